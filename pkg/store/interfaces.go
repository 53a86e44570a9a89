package store

import (
	"context"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

// SessionStoreInterface persists the session to protocol association.
// Key format: "session:<sessionId>"
type SessionStoreInterface interface {
	// Set records the protocol for a session, overwriting any previous record
	Set(ctx context.Context, sessionID string, protocol structs.Protocol) error

	// Get returns the record for a session, found is false when absent
	Get(ctx context.Context, sessionID string) (record *SessionRecord, found bool, err error)

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns every stored session keyed by session id
	List(ctx context.Context) (map[string]*SessionRecord, error)
}

// StoreInterface is the main interface that should be used by consumers
type StoreInterface interface {
	GetSessionStore() SessionStoreInterface
}
