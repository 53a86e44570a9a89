package connection

import (
	"context"
	"sync"
	"time"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Connection describes the active session
type Connection struct {
	SessionID   string
	Protocol    structs.Protocol
	Repository  string
	Username    string
	ConnectedAt time.Time
}

// Manager holds the caller's active session. It satisfies the session source
// the entity caches read through.
type Manager struct {
	client clients.Client

	mu     sync.RWMutex
	active *Connection
}

func NewManager(client clients.Client) *Manager {
	return &Manager{client: client}
}

// Connect opens a session and makes it the active one. A previously active
// session is disconnected first.
func (m *Manager) Connect(ctx context.Context, params structs.ConnectParams) (*Connection, error) {
	protocol, err := params.Protocol()
	if err != nil {
		return nil, err
	}

	if _, ok := m.ActiveSession(); ok {
		if err := m.Disconnect(ctx); err != nil {
			logger.Logger(ctx).WithError(err).Warn("failed to close previous session")
		}
	}

	sessionID, err := m.client.Connect(ctx, params)
	if err != nil {
		return nil, err
	}

	conn := &Connection{
		SessionID:   sessionID,
		Protocol:    protocol,
		Repository:  params.Repository,
		Username:    params.Username,
		ConnectedAt: time.Now(),
	}

	m.mu.Lock()
	m.active = conn
	m.mu.Unlock()

	logger.Logger(ctx).WithFields(logrus.Fields{
		"session":    sessionID,
		"repository": params.Repository,
	}).Info("active session changed")

	copied := *conn
	return &copied, nil
}

// Disconnect closes the active session. The session is forgotten even when
// the bridge reports an error.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	conn := m.active
	m.active = nil
	m.mu.Unlock()

	if conn == nil {
		return clients.ErrNoActiveSession
	}
	return m.client.Disconnect(ctx, conn.SessionID)
}

func (m *Manager) ActiveSession() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return "", false
	}
	return m.active.SessionID, true
}

// Current returns a copy of the active connection
func (m *Manager) Current() (Connection, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.active == nil {
		return Connection{}, false
	}
	return *m.active, true
}
