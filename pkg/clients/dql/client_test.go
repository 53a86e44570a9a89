package dql

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/redhat-data-and-ai/repobridge/internal/bridgetest"
	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/clients/transport"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/stretchr/testify/suite"
)

type DQLClientTestSuite struct {
	suite.Suite
	ctx     context.Context
	bridge  *bridgetest.QueryBridge
	client  *DQLClient
	session string
}

func (s *DQLClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.bridge = bridgetest.NewQueryBridge()
	s.client = NewClient(transport.NewClient(serviceName, transport.Config{
		BaseURL:        s.bridge.URL(),
		RequestTimeout: 5 * time.Second,
	}))

	sid, err := s.client.Connect(s.ctx, structs.ConnectParams{
		Docbroker:  "broker.example.com",
		Port:       1489,
		Repository: "repo1",
		Username:   "dmadmin",
		Password:   "secret",
	})
	s.Require().NoError(err)
	s.session = sid
}

func (s *DQLClientTestSuite) TearDownTest() {
	s.bridge.Close()
}

func TestDQLClient(t *testing.T) {
	suite.Run(t, new(DQLClientTestSuite))
}

func (s *DQLClientTestSuite) answer(rows ...map[string]interface{}) {
	s.bridge.OnQuery(func(string) (bridgetest.QueryResponse, int) {
		return bridgetest.QueryResponse{Rows: rows}, http.StatusOK
	})
}

func (s *DQLClientTestSuite) lastQuery() string {
	queries := s.bridge.Queries()
	s.Require().NotEmpty(queries)
	return queries[len(queries)-1]
}

func (s *DQLClientTestSuite) TestConnectSendsDocbrokerParams() {
	params := s.bridge.LastConnect()
	s.Equal("broker.example.com", params.Docbroker)
	s.Equal(1489, params.Port)
	s.Equal("repo1", params.Repository)
	s.True(s.bridge.HasSession(s.session))
}

func (s *DQLClientTestSuite) TestConnectRejected() {
	_, err := s.client.Connect(s.ctx, structs.ConnectParams{
		Docbroker: "broker", Port: 1489, Repository: "repo1", Username: "dmadmin", Password: "wrong",
	})

	var statusErr *clients.StatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusUnauthorized, statusErr.StatusCode)
}

func (s *DQLClientTestSuite) TestConnectRequiresDocbroker() {
	_, err := s.client.Connect(s.ctx, structs.ConnectParams{Endpoint: "http://rest", Repository: "repo1"})
	s.ErrorIs(err, clients.ErrInvalidConnectParams)
}

func (s *DQLClientTestSuite) TestDisconnect() {
	s.Require().NoError(s.client.Disconnect(s.ctx, s.session))
	s.False(s.bridge.HasSession(s.session))
}

func (s *DQLClientTestSuite) TestExecuteQueryNormalizesResult() {
	s.answer(
		map[string]interface{}{"object_name": "Temp", "r_object_id": "0c01"},
		map[string]interface{}{"object_name": "System", "r_object_id": "0c02"},
	)

	result, err := s.client.ExecuteQuery(s.ctx, s.session, "SELECT r_object_id, object_name FROM dm_cabinet")
	s.Require().NoError(err)
	s.Equal([]string{"object_name", "r_object_id"}, result.Columns)
	s.Equal(2, result.RowCount)
	s.Len(result.Rows, 2)
}

func (s *DQLClientTestSuite) TestExecuteQueryKeepsReportedShape() {
	s.bridge.OnQuery(func(string) (bridgetest.QueryResponse, int) {
		return bridgetest.QueryResponse{Columns: []string{"count"}, Rows: nil, RowCount: 7}, http.StatusOK
	})

	result, err := s.client.ExecuteQuery(s.ctx, s.session, "SELECT count(*) FROM dm_document")
	s.Require().NoError(err)
	s.Equal([]string{"count"}, result.Columns)
	s.Equal(7, result.RowCount)
	s.NotNil(result.Rows)
	s.Empty(result.Rows)
}

func (s *DQLClientTestSuite) TestExecuteQueryUnknownSession() {
	_, err := s.client.ExecuteQuery(s.ctx, "stale", "SELECT 1 FROM dm_server_config")

	var statusErr *clients.StatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusUnauthorized, statusErr.StatusCode)
}

func (s *DQLClientTestSuite) TestGetUsers() {
	s.answer(
		map[string]interface{}{
			"r_object_id": "1101", "user_name": "Alice", "user_login_name": "alice",
			"user_address": "alice@example.com", "user_source": "LDAP", "user_state": float64(0),
			"default_folder": "/Alice", "description": "",
		},
		map[string]interface{}{"r_object_id": "1102", "user_name": "bob"},
	)

	users, err := s.client.GetUsers(s.ctx, s.session)
	s.Require().NoError(err)
	s.Equal(listUsersQuery, s.lastQuery())
	s.Require().Len(users, 2)
	s.Equal(&structs.User{
		ID: "1101", UserName: "Alice", LoginName: "alice", Address: "alice@example.com",
		Source: "LDAP", State: "0", DefaultFolder: "/Alice",
	}, users[0])
	s.False(users[0].HasDetails())
	s.Equal("bob", users[1].UserName)
}

func (s *DQLClientTestSuite) TestGetUser() {
	s.answer(map[string]interface{}{
		"r_object_id": "1101", "user_name": "o'brien", "user_privileges": float64(16),
	})

	user, err := s.client.GetUser(s.ctx, s.session, "o'brien")
	s.Require().NoError(err)
	s.Equal("SELECT * FROM dm_user WHERE user_name = 'o''brien'", s.lastQuery())
	s.Equal("o'brien", user.UserName)
	s.Equal([]structs.Attribute{
		{Name: "r_object_id", Value: "1101", Type: structs.AttributeTypeString},
		{Name: "user_name", Value: "o'brien", Type: structs.AttributeTypeString},
		{Name: "user_privileges", Value: "16", Type: structs.AttributeTypeNumber},
	}, user.Attributes)
}

func (s *DQLClientTestSuite) TestGetUserNotFound() {
	s.answer()

	_, err := s.client.GetUser(s.ctx, s.session, "ghost")
	s.ErrorIs(err, clients.ErrNotFound)
	s.False(clients.IsConnectivity(err))
}

func (s *DQLClientTestSuite) TestGetGroupsForUser() {
	s.answer(
		map[string]interface{}{"group_name": "docu"},
		map[string]interface{}{"group_name": "dm_world"},
	)

	groups, err := s.client.GetGroupsForUser(s.ctx, s.session, "alice")
	s.Require().NoError(err)
	s.Equal("SELECT group_name FROM dm_group WHERE ANY users_names = 'alice'", s.lastQuery())
	s.Equal([]string{"docu", "dm_world"}, groups)
}

func (s *DQLClientTestSuite) TestGetGroups() {
	s.answer(map[string]interface{}{
		"r_object_id": "1201", "group_name": "docu", "group_class": "group", "group_admin": "dmadmin",
	})

	groups, err := s.client.GetGroups(s.ctx, s.session)
	s.Require().NoError(err)
	s.Equal(listGroupsQuery, s.lastQuery())
	s.Require().Len(groups, 1)
	s.Equal(&structs.Group{ID: "1201", Name: "docu", Class: "group", Admin: "dmadmin"}, groups[0])
}

func (s *DQLClientTestSuite) TestGetGroupNormalizesMemberColumns() {
	s.answer(map[string]interface{}{
		"r_object_id":  "1201",
		"group_name":   "docu",
		"users_names":  []interface{}{"alice", "bob"},
		"groups_names": "dm_world",
		"is_private":   false,
	})

	group, err := s.client.GetGroup(s.ctx, s.session, "docu")
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob"}, group.MemberUsers)
	s.Equal([]string{"dm_world"}, group.MemberGroups)
	s.Equal([]structs.Attribute{
		{Name: "group_name", Value: "docu", Type: structs.AttributeTypeString},
		{Name: "is_private", Value: "false", Type: structs.AttributeTypeBoolean},
		{Name: "r_object_id", Value: "1201", Type: structs.AttributeTypeString},
	}, group.Attributes)
}

func (s *DQLClientTestSuite) TestGetGroupWithoutMembers() {
	s.answer(map[string]interface{}{"group_name": "empty"})

	group, err := s.client.GetGroup(s.ctx, s.session, "empty")
	s.Require().NoError(err)
	s.Equal([]string{}, group.MemberUsers)
	s.Equal([]string{}, group.MemberGroups)
}

func (s *DQLClientTestSuite) TestGetGroupEscapesQuotes() {
	s.answer()

	_, err := s.client.GetGroup(s.ctx, s.session, "it's 'ops'")
	s.ErrorIs(err, clients.ErrNotFound)
	s.Equal("SELECT * FROM dm_group WHERE group_name = 'it''s ''ops'''", s.lastQuery())
}

func (s *DQLClientTestSuite) TestGetGroupMembers() {
	s.answer(map[string]interface{}{"users_names": "alice", "groups_names": nil})

	members, err := s.client.GetGroupMembers(s.ctx, s.session, "docu")
	s.Require().NoError(err)
	s.Equal("SELECT users_names, groups_names FROM dm_group WHERE group_name = 'docu'", s.lastQuery())
	s.Equal(&structs.GroupMembers{Users: []string{"alice"}, Groups: []string{}}, members)
}

func (s *DQLClientTestSuite) TestGetGroupMembersNotFound() {
	s.answer()

	_, err := s.client.GetGroupMembers(s.ctx, s.session, "ghost")
	s.ErrorIs(err, clients.ErrNotFound)
}

func (s *DQLClientTestSuite) TestGetParentGroups() {
	s.answer(map[string]interface{}{"group_name": "dm_world"})

	parents, err := s.client.GetParentGroups(s.ctx, s.session, "docu")
	s.Require().NoError(err)
	s.Equal("SELECT group_name FROM dm_group WHERE ANY groups_names = 'docu'", s.lastQuery())
	s.Equal([]string{"dm_world"}, parents)
}

func (s *DQLClientTestSuite) TestGetCabinets() {
	s.answer(
		map[string]interface{}{"r_object_id": "0c01", "object_name": "System"},
		map[string]interface{}{"r_object_id": "0c02", "object_name": "Temp"},
	)

	cabinets, err := s.client.GetCabinets(s.ctx, s.session)
	s.Require().NoError(err)
	s.Equal(listCabinetsQuery, s.lastQuery())
	s.Equal([]structs.Cabinet{{ID: "0c01", Name: "System"}, {ID: "0c02", Name: "Temp"}}, cabinets)
}

func (s *DQLClientTestSuite) TestGetFolderContents() {
	s.answer(
		map[string]interface{}{
			"r_object_id": "0b01", "object_name": "Reports", "r_object_type": "dm_folder",
			"r_modify_date": "2025-01-02T03:04:05Z",
		},
		map[string]interface{}{"r_object_id": "0901", "object_name": "summary.pdf", "r_object_type": "dm_document"},
	)

	items, err := s.client.GetFolderContents(s.ctx, s.session, "/Temp/Bob's")
	s.Require().NoError(err)
	s.True(strings.Contains(s.lastQuery(), "WHERE FOLDER('/Temp/Bob''s')"))
	s.Require().Len(items, 2)
	s.True(items[0].IsFolder)
	s.Equal("2025-01-02T03:04:05Z", items[0].Modified)
	s.False(items[1].IsFolder)
	s.Equal("dm_document", items[1].Type)
}

func (s *DQLClientTestSuite) TestQueryFailure() {
	s.bridge.OnQuery(func(string) (bridgetest.QueryResponse, int) {
		return bridgetest.QueryResponse{}, http.StatusBadRequest
	})

	_, err := s.client.GetGroups(s.ctx, s.session)
	s.Error(err)
}

func TestEscape(t *testing.T) {
	for _, name := range []string{"docu", "o'brien", "''", "a'b'c"} {
		escaped := Escape(name)
		if strings.Count(escaped, "'") != 2*strings.Count(name, "'") {
			t.Errorf("Escape(%q) = %q, quotes not doubled", name, escaped)
		}
		if strings.ReplaceAll(escaped, "''", "'") != name {
			t.Errorf("Escape(%q) = %q does not round trip", name, escaped)
		}
	}
}
