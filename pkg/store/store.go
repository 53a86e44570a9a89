package store

import (
	"fmt"

	"github.com/redhat-data-and-ai/repobridge/pkg/cache"
	"github.com/redhat-data-and-ai/repobridge/pkg/cache/inmemory"
	"github.com/redhat-data-and-ai/repobridge/pkg/cache/redis"
	"github.com/redhat-data-and-ai/repobridge/pkg/config"
)

// Store wraps a cache.Cache with key prefixing and JSON serialization.
// NOTE: the store does no locking of its own, the underlying driver is
// expected to be safe for concurrent use.
type Store struct {
	Session SessionStoreInterface
}

func New(c cache.Cache) *Store {
	return &Store{
		Session: newSessionStore(c),
	}
}

func (s *Store) GetSessionStore() SessionStoreInterface {
	return s.Session
}

var (
	_ SessionStoreInterface = (*SessionStore)(nil)
	_ StoreInterface        = (*Store)(nil)
)

// NewCache builds the cache driver selected by the configuration
func NewCache(cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Driver {
	case "", "memory":
		return inmemory.NewCache(&inmemory.Config{
			DefaultExpiration: cfg.InMemory.DefaultExpiration,
			CleanupInterval:   cfg.InMemory.CleanupInterval,
		})
	case "redis":
		return redis.NewCache(&redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Database: cfg.Redis.Database,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
		})
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}
