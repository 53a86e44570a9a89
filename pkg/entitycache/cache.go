// Package entitycache provides read-through caches of repository users and
// groups on top of the bridge.
package entitycache

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "refresh"

// Record is an entity that can be indexed by name and hydrated with details.
// WithDetails must return a new value and leave the receiver untouched.
type Record[T any] interface {
	GetName() string
	HasDetails() bool
	WithDetails(other T) T
}

// SessionSource supplies the session the caches read through
type SessionSource interface {
	ActiveSession() (string, bool)
}

type listFunc[T any] func(ctx context.Context, sessionID string) ([]T, error)
type fetchFunc[T any] func(ctx context.Context, sessionID, name string) (T, error)

// Cache is a case-insensitive, refresh-coalescing cache of one entity kind.
// Lookups never do I/O. Refresh replaces the whole state at once, readers see
// either the previous or the new state. Records handed out are never mutated;
// hydration replaces the record under its name, so identity is per name and
// callers holding an older record keep a consistent summary.
type Cache[T Record[T]] struct {
	kind     string
	sessions SessionSource
	list     listFunc[T]
	fetch    fetchFunc[T]

	group singleflight.Group

	mu          sync.RWMutex
	byName      map[string]T
	names       []string
	lastRefresh time.Time

	listenersMu sync.Mutex
	listeners   []func()
}

func newCache[T Record[T]](kind string, sessions SessionSource, list listFunc[T], fetch fetchFunc[T]) *Cache[T] {
	return &Cache[T]{
		kind:     kind,
		sessions: sessions,
		list:     list,
		fetch:    fetch,
		byName:   make(map[string]T),
		names:    []string{},
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

func compareNames(a, b string) int {
	if c := strings.Compare(key(a), key(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Refresh reloads every entity from the bridge. Concurrent calls share one
// backend call and its outcome. A failed refresh leaves the cached state as
// it was. Once started a refresh runs to completion even if ctx is canceled.
func (c *Cache[T]) Refresh(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	_, err, _ := c.group.Do(refreshKey, func() (interface{}, error) {
		return nil, c.refresh(ctx)
	})
	return err
}

func (c *Cache[T]) refresh(ctx context.Context) error {
	log := logger.Logger(ctx).WithField("kind", c.kind)

	sessionID, ok := c.sessions.ActiveSession()
	if !ok {
		return clients.ErrNoActiveSession
	}

	records, err := c.list(ctx, sessionID)
	if err != nil {
		log.WithError(err).Error("refresh failed")
		return err
	}

	byName := make(map[string]T, len(records))
	for _, record := range records {
		byName[key(record.GetName())] = record
	}
	names := make([]string, 0, len(byName))
	for _, record := range byName {
		names = append(names, record.GetName())
	}
	slices.SortFunc(names, compareNames)

	c.mu.Lock()
	c.byName = byName
	c.names = names
	c.lastRefresh = time.Now()
	c.mu.Unlock()

	log.WithField("count", len(names)).Info("cache refreshed")
	c.notify()
	return nil
}

func (c *Cache[T]) notify() {
	c.listenersMu.Lock()
	listeners := slices.Clone(c.listeners)
	c.listenersMu.Unlock()

	for _, listener := range listeners {
		listener()
	}
}

// OnRefresh registers a listener called after every successful refresh, in
// registration order
func (c *Cache[T]) OnRefresh(listener func()) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.listeners = append(c.listeners, listener)
}

// GetEntityNames returns the cached names sorted case-insensitively
func (c *Cache[T]) GetEntityNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.names)
}

func (c *Cache[T]) GetEntity(name string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.byName[key(name)]
	return record, ok
}

// SearchEntities returns the sorted names containing pattern, ignoring case
func (c *Cache[T]) SearchEntities(pattern string) []string {
	needle := key(pattern)

	c.mu.RLock()
	defer c.mu.RUnlock()

	matches := []string{}
	for _, name := range c.names {
		if strings.Contains(key(name), needle) {
			matches = append(matches, name)
		}
	}
	return matches
}

// GetLastRefresh returns the time of the last successful refresh, ok is false
// until the first one
func (c *Cache[T]) GetLastRefresh() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh, !c.lastRefresh.IsZero()
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byName)
}

// Clear empties the cache. A refresh already in flight still installs its
// result when it completes.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName = make(map[string]T)
	c.names = []string{}
	c.lastRefresh = time.Time{}
}

// FetchDetails hydrates the named entity and returns it. On any failure it
// returns what was cached before the call, the zero value when nothing was.
func (c *Cache[T]) FetchDetails(ctx context.Context, name string) (T, bool) {
	result := c.FetchDetailsResult(ctx, name)
	return result.Value, result.Ok()
}

// FetchDetailsResult is FetchDetails with the outcome made explicit. Details
// are fetched at most once per entity; a hydrated record is returned as is.
func (c *Cache[T]) FetchDetailsResult(ctx context.Context, name string) Result[T] {
	cached, found := c.GetEntity(name)
	if found && cached.HasDetails() {
		return Fresh(cached)
	}

	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"kind": c.kind,
		"name": name,
	})

	// backends may match names exactly, ask with the cached spelling
	canonical := name
	if found {
		canonical = cached.GetName()
	}

	fetched, err, _ := c.group.Do("details:"+key(name), func() (interface{}, error) {
		sessionID, ok := c.sessions.ActiveSession()
		if !ok {
			return nil, clients.ErrNoActiveSession
		}
		return c.fetch(ctx, sessionID, canonical)
	})
	if err != nil {
		log.WithError(err).Warn("failed to fetch details, keeping cached record")
		if found {
			return Stale(cached, err)
		}
		return Failed[T](err)
	}

	return Fresh(c.install(fetched.(T)))
}

// install swaps a hydrated copy of the cached record in under its name and
// returns it
func (c *Cache[T]) install(detailed T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(detailed.GetName())
	base, ok := c.byName[k]
	if !ok {
		base = detailed
		i, _ := slices.BinarySearchFunc(c.names, detailed.GetName(), compareNames)
		c.names = slices.Insert(c.names, i, detailed.GetName())
	}

	merged := base.WithDetails(detailed)
	c.byName[k] = merged
	return merged
}
