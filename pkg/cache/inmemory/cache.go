package inmemory

import (
	"context"
	"time"

	"github.com/gobwas/glob"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redhat-data-and-ai/repobridge/pkg/cache"
)

// Config holds the expiration settings in seconds. A negative value means
// entries never expire.
type Config struct {
	DefaultExpiration int32
	CleanupInterval   int32
}

// InMemoryCache is a process local cache.Cache backed by go-cache
type InMemoryCache struct {
	client *gocache.Cache
}

var _ cache.Cache = (*InMemoryCache)(nil)

func NewCache(config *Config) (*InMemoryCache, error) {
	if config == nil {
		config = &Config{DefaultExpiration: -1, CleanupInterval: -1}
	}

	return &InMemoryCache{
		client: gocache.New(seconds(config.DefaultExpiration), seconds(config.CleanupInterval)),
	}, nil
}

func seconds(v int32) time.Duration {
	if v < 0 {
		return gocache.NoExpiration
	}
	return time.Duration(v) * time.Second
}

// Set stores value under key. A zero ttl uses the default expiration.
func (c *InMemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.client.Set(key, value, ttl)
	return nil
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := c.client.Get(key)
	if !found {
		return "", cache.ErrKeyNotFound
	}
	return val, nil
}

// GetByPattern matches keys the way redis SCAN MATCH does: keys have no
// separators, so * matches any run of characters including '/'
func (c *InMemoryCache) GetByPattern(_ context.Context, keyPattern string) (map[string]interface{}, error) {
	g, err := glob.Compile(keyPattern)
	if err != nil {
		return nil, err
	}

	values := make(map[string]interface{})
	for key, item := range c.client.Items() {
		if g.Match(key) {
			values[key] = item.Object
		}
	}
	return values, nil
}

func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.client.Delete(key)
	return nil
}
