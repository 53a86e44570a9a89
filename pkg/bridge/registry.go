package bridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/redhat-data-and-ai/repobridge/pkg/store"
	"github.com/sirupsen/logrus"
)

// fallbackOrder is the order in which initialized backends are tried for an
// unregistered session
var fallbackOrder = []structs.Protocol{structs.ProtocolQuery, structs.ProtocolREST}

// Registry maps sessions to the backend that serves them. Session records live
// in the session store, backends are only known once verified reachable.
type Registry struct {
	sessions store.SessionStoreInterface

	mu       sync.RWMutex
	backends map[structs.Protocol]clients.Client
}

func NewRegistry(sessions store.SessionStoreInterface) *Registry {
	return &Registry{
		sessions: sessions,
		backends: make(map[structs.Protocol]clients.Client),
	}
}

// SetBackend installs the backend serving a protocol
func (r *Registry) SetBackend(protocol structs.Protocol, backend clients.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[protocol] = backend
}

func (r *Registry) Backend(protocol structs.Protocol) (clients.Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	backend, ok := r.backends[protocol]
	return backend, ok
}

// Register records the protocol a session was negotiated with. Registering an
// existing session overwrites it.
func (r *Registry) Register(ctx context.Context, sessionID string, protocol structs.Protocol) error {
	if err := r.sessions.Set(ctx, sessionID, protocol); err != nil {
		return fmt.Errorf("failed to register session: %w", err)
	}
	return nil
}

// Resolve returns the backend for the session's protocol.
//
// An unregistered session falls back to the query backend, then the REST
// backend, whichever has been initialized. This keeps callers that hold a
// session id from before routing existed working and must not be relied on by
// new code. With no initialized backend Resolve fails with
// ErrBridgeNotInitialized.
func (r *Registry) Resolve(ctx context.Context, sessionID string) (clients.Client, error) {
	record, found, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	if found {
		backend, ok := r.Backend(record.Protocol)
		if !ok {
			return nil, fmt.Errorf("%s backend: %w", record.Protocol, clients.ErrBridgeNotInitialized)
		}
		return backend, nil
	}

	for _, protocol := range fallbackOrder {
		if backend, ok := r.Backend(protocol); ok {
			logger.Logger(ctx).WithFields(logrus.Fields{
				"session":  sessionID,
				"protocol": protocol,
			}).Debug("session is not registered, using fallback backend")
			return backend, nil
		}
	}
	return nil, clients.ErrBridgeNotInitialized
}

// Unregister removes a session, unknown sessions are ignored
func (r *Registry) Unregister(ctx context.Context, sessionID string) error {
	return r.sessions.Delete(ctx, sessionID)
}

// Sessions returns every registered session with its protocol
func (r *Registry) Sessions(ctx context.Context) (map[string]structs.Protocol, error) {
	records, err := r.sessions.List(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make(map[string]structs.Protocol, len(records))
	for id, record := range records {
		sessions[id] = record.Protocol
	}
	return sessions, nil
}
