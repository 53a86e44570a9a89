// Package bridgetest provides in-process fake bridge servers for tests.
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

func init() {
	gin.SetMode(gin.TestMode)
}

// QueryResponse is the body the fake query bridge returns for /query.
// Rows are raw so tests can send scalars where lists are expected.
type QueryResponse struct {
	Columns  []string                 `json:"columns,omitempty"`
	Rows     []map[string]interface{} `json:"rows"`
	RowCount int                      `json:"rowCount,omitempty"`
}

// QueryFunc answers one query. A zero status means 200.
type QueryFunc func(query string) (QueryResponse, int)

// QueryBridge fakes the query protocol bridge
type QueryBridge struct {
	server *httptest.Server

	mu          sync.Mutex
	queries     []string
	sessions    map[string]bool
	lastConnect structs.ConnectParams
	onQuery     QueryFunc
	nextID      int

	unhealthy atomic.Bool
}

func NewQueryBridge() *QueryBridge {
	b := &QueryBridge{
		sessions: map[string]bool{},
		onQuery: func(string) (QueryResponse, int) {
			return QueryResponse{}, http.StatusOK
		},
	}

	router := gin.New()
	router.GET("/health", b.health)
	router.POST("/connect", b.connect)
	router.POST("/disconnect", b.disconnect)
	router.POST("/query", b.query)

	b.server = httptest.NewServer(router)
	return b
}

func (b *QueryBridge) URL() string {
	return b.server.URL
}

func (b *QueryBridge) Close() {
	b.server.Close()
}

// SetHealthy toggles the /health answer
func (b *QueryBridge) SetHealthy(healthy bool) {
	b.unhealthy.Store(!healthy)
}

func (b *QueryBridge) OnQuery(fn QueryFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onQuery = fn
}

// Queries returns every query received so far, in order
func (b *QueryBridge) Queries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func (b *QueryBridge) LastConnect() structs.ConnectParams {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastConnect
}

func (b *QueryBridge) HasSession(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[id]
}

func (b *QueryBridge) health(c *gin.Context) {
	if b.unhealthy.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (b *QueryBridge) connect(c *gin.Context) {
	var params structs.ConnectParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.Password == "wrong" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	b.mu.Lock()
	b.nextID++
	id := fmt.Sprintf("query-session-%d", b.nextID)
	b.sessions[id] = true
	b.lastConnect = params
	b.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"sessionId": id})
}

func (b *QueryBridge) disconnect(c *gin.Context) {
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

func (b *QueryBridge) query(c *gin.Context) {
	var body struct {
		SessionID string `json:"sessionId"`
		Query     string `json:"query"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b.mu.Lock()
	b.queries = append(b.queries, body.Query)
	known := b.sessions[body.SessionID]
	fn := b.onQuery
	b.mu.Unlock()

	if !known {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown session"})
		return
	}

	resp, status := fn(body.Query)
	if status == 0 {
		status = http.StatusOK
	}
	if status != http.StatusOK {
		c.JSON(status, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
