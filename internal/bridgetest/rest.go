package bridgetest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

// Properties is the property bag of one REST object
type Properties map[string]interface{}

// RESTData is the repository content served by the fake REST bridge.
// Keys of the name-indexed maps are the exact names used in request paths.
type RESTData struct {
	Users      []Properties
	Groups     []Properties
	UserGroups map[string][]string
	Members    map[string]structs.GroupMembers
	Parents    map[string][]string
	Cabinets   []Properties
	Folders    map[string][]Properties
}

// RESTBridge fakes the REST protocol bridge
type RESTBridge struct {
	server *httptest.Server

	mu          sync.Mutex
	data        RESTData
	sessions    map[string]bool
	lastConnect structs.ConnectParams
	calls       map[string]int
	failures    map[string]int
	nextID      int

	unhealthy atomic.Bool
}

func NewRESTBridge(data RESTData) *RESTBridge {
	b := &RESTBridge{
		data:     data,
		sessions: map[string]bool{},
		calls:    map[string]int{},
		failures: map[string]int{},
	}

	router := gin.New()
	router.GET("/health", b.health)
	router.POST("/connect", b.connect)
	router.POST("/disconnect", b.disconnect)

	sessions := router.Group("/sessions/:sid", b.requireSession)
	sessions.GET("/users", b.listUsers)
	sessions.GET("/users/:name", b.getUser)
	sessions.GET("/users/:name/groups", b.userGroups)
	sessions.GET("/groups", b.listGroups)
	sessions.GET("/groups/:name", b.getGroup)
	sessions.GET("/groups/:name/members", b.groupMembers)
	sessions.GET("/groups/:name/parents", b.parentGroups)
	sessions.GET("/cabinets", b.cabinets)
	sessions.GET("/folders/contents", b.folderContents)

	b.server = httptest.NewServer(router)
	return b
}

func (b *RESTBridge) URL() string {
	return b.server.URL
}

func (b *RESTBridge) Close() {
	b.server.Close()
}

func (b *RESTBridge) SetHealthy(healthy bool) {
	b.unhealthy.Store(!healthy)
}

// Fail makes every request whose route matches fullPath answer with status
func (b *RESTBridge) Fail(fullPath string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[fullPath] = status
}

// Calls returns how many times the route was hit
func (b *RESTBridge) Calls(fullPath string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[fullPath]
}

func (b *RESTBridge) LastConnect() structs.ConnectParams {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastConnect
}

func (b *RESTBridge) HasSession(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[id]
}

func (b *RESTBridge) health(c *gin.Context) {
	if b.unhealthy.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (b *RESTBridge) connect(c *gin.Context) {
	var params structs.ConnectParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	b.nextID++
	id := fmt.Sprintf("rest-session-%d", b.nextID)
	b.sessions[id] = true
	b.lastConnect = params
	b.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"sessionId": id})
}

func (b *RESTBridge) disconnect(c *gin.Context) {
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	delete(b.sessions, body.SessionID)
	b.mu.Unlock()

	c.Status(http.StatusNoContent)
}

func (b *RESTBridge) requireSession(c *gin.Context) {
	b.mu.Lock()
	b.calls[c.FullPath()]++
	known := b.sessions[c.Param("sid")]
	failure := b.failures[c.FullPath()]
	b.mu.Unlock()

	if !known {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown session"})
		return
	}
	if failure != 0 {
		c.AbortWithStatusJSON(failure, gin.H{"error": "injected failure"})
		return
	}
	c.Next()
}

func collection(items []Properties) gin.H {
	entries := make([]gin.H, 0, len(items))
	for _, item := range items {
		entries = append(entries, gin.H{"content": gin.H{"properties": item}})
	}
	return gin.H{"entries": entries}
}

func findByName(items []Properties, key, name string) (Properties, bool) {
	for _, item := range items {
		if v, ok := item[key].(string); ok && v == name {
			return item, true
		}
	}
	return nil, false
}

func (b *RESTBridge) listUsers(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, collection(b.data.Users))
}

func (b *RESTBridge) getUser(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := findByName(b.data.Users, "user_name", c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": gin.H{"properties": user}})
}

func (b *RESTBridge) userGroups(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"names": b.data.UserGroups[c.Param("name")]})
}

func (b *RESTBridge) listGroups(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, collection(b.data.Groups))
}

func (b *RESTBridge) getGroup(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	group, ok := findByName(b.data.Groups, "group_name", c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": gin.H{"properties": group}})
}

func (b *RESTBridge) groupMembers(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	members, ok := b.data.Members[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": members.Users, "groups": members.Groups})
}

func (b *RESTBridge) parentGroups(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"names": b.data.Parents[c.Param("name")]})
}

func (b *RESTBridge) cabinets(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c.JSON(http.StatusOK, collection(b.data.Cabinets))
}

func (b *RESTBridge) folderContents(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items, ok := b.data.Folders[c.Query("path")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "folder not found"})
		return
	}
	c.JSON(http.StatusOK, collection(items))
}
