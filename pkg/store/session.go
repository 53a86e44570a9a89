package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redhat-data-and-ai/repobridge/pkg/cache"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

const sessionPrefix = "session:"

// SessionRecord is the stored value of one session
type SessionRecord struct {
	Protocol structs.Protocol `json:"protocol"`
	Created  time.Time        `json:"created"`
}

type SessionStore struct {
	cache cache.Cache
}

func newSessionStore(c cache.Cache) *SessionStore {
	return &SessionStore{cache: c}
}

func sessionKey(sessionID string) string {
	return sessionPrefix + sessionID
}

func (s *SessionStore) Set(ctx context.Context, sessionID string, protocol structs.Protocol) error {
	data, err := json.Marshal(SessionRecord{Protocol: protocol, Created: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}
	return s.cache.Set(ctx, sessionKey(sessionID), string(data), 0)
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*SessionRecord, bool, error) {
	val, err := s.cache.Get(ctx, sessionKey(sessionID))
	if errors.Is(err, cache.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	record, err := decodeSession(val)
	if err != nil {
		return nil, false, fmt.Errorf("session %q: %w", sessionID, err)
	}
	return record, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKey(sessionID))
}

func (s *SessionStore) List(ctx context.Context) (map[string]*SessionRecord, error) {
	values, err := s.cache.GetByPattern(ctx, sessionPrefix+"*")
	if err != nil {
		return nil, err
	}

	sessions := make(map[string]*SessionRecord, len(values))
	for key, val := range values {
		record, err := decodeSession(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		sessions[strings.TrimPrefix(key, sessionPrefix)] = record
	}
	return sessions, nil
}

func decodeSession(val interface{}) (*SessionRecord, error) {
	raw, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected session value type %T", val)
	}

	record := &SessionRecord{}
	if err := json.Unmarshal([]byte(raw), record); err != nil {
		return nil, fmt.Errorf("failed to decode session record: %w", err)
	}
	if _, err := structs.GetProtocol(string(record.Protocol)); err != nil {
		return nil, err
	}
	return record, nil
}
