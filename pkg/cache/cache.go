package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key is absent or expired
var ErrKeyNotFound = errors.New("key not found")

// Cache is the key/value driver contract shared by the inmemory and redis drivers
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (interface{}, error)
	// GetByPattern returns every key matching a glob style pattern with its value
	GetByPattern(ctx context.Context, keyPattern string) (map[string]interface{}, error)
	Delete(ctx context.Context, key string) error
}
