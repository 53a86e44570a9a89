package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redhat-data-and-ai/repobridge/pkg/cache"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config holds all required info for initializing the redis driver
type Config struct {
	Host     string
	Port     string
	Database int32
	Username string
	Password string
}

// RedisCache is a cache.Cache shared between processes through redis
type RedisCache struct {
	client redis.UniversalClient
}

var _ cache.Cache = (*RedisCache)(nil)

// NewCache connects to redis and verifies the connection with a ping
func NewCache(config *Config) (*RedisCache, error) {
	if config == nil {
		config = &Config{Host: "localhost", Port: "6379"}
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{net.JoinHostPort(config.Host, config.Port)},
		Username: config.Username,
		Password: config.Password,
		DB:       int(config.Database),
	})

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument redis: %w", err)
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		return nil, fmt.Errorf("failed to instrument redis metrics: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

func (rc *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

func (rc *RedisCache) Get(ctx context.Context, key string) (interface{}, error) {
	val, err := rc.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", cache.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// GetByPattern collects matching keys with SCAN and reads them with one MGET.
// Keys that expire between the two calls are skipped.
func (rc *RedisCache) GetByPattern(ctx context.Context, keyPattern string) (map[string]interface{}, error) {
	var keys []string
	iter := rc.client.Scan(ctx, 0, keyPattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	values := make(map[string]interface{}, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	vals, err := rc.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, key := range keys {
		if vals[i] != nil {
			values[key] = vals[i]
		}
	}
	return values, nil
}

func (rc *RedisCache) Delete(ctx context.Context, key string) error {
	return rc.client.Del(ctx, key).Err()
}

// Disconnect closes the underlying client
func (rc *RedisCache) Disconnect() error {
	return rc.client.Close()
}
