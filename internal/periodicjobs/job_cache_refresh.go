package periodicjobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redhat-data-and-ai/repobridge/pkg/entitycache"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/types"
)

const (
	// CacheRefreshJobName identifies the cache refresh job in logs
	CacheRefreshJobName = "repobridge_cache_refresh"

	DefaultCacheRefreshInterval = 10 * time.Minute
)

// Refresher is anything that can reload itself from the bridge
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CacheRefreshJob refreshes the entity caches while a session is active.
// Without an active session a run is a no-op.
type CacheRefreshJob struct {
	sessions entitycache.SessionSource
	interval time.Duration

	mu     sync.Mutex
	caches map[string]Refresher
}

func NewCacheRefreshJob(sessions entitycache.SessionSource, interval time.Duration) *CacheRefreshJob {
	if interval <= 0 {
		interval = DefaultCacheRefreshInterval
	}
	return &CacheRefreshJob{
		sessions: sessions,
		interval: interval,
		caches:   make(map[string]Refresher),
	}
}

// AddCache registers a cache under a name used in logs
func (j *CacheRefreshJob) AddCache(name string, cache Refresher) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.caches[name] = cache
}

func (j *CacheRefreshJob) AddToPeriodicTaskManager(mgr *PeriodicTaskManager) {
	mgr.AddTask(j)
}

func (j *CacheRefreshJob) GetName() string {
	return CacheRefreshJobName
}

func (j *CacheRefreshJob) GetInterval() time.Duration {
	return j.interval
}

// Run refreshes every registered cache concurrently and reports all failures
func (j *CacheRefreshJob) Run(ctx context.Context) error {
	ctx = logger.WithRequestId(ctx, types.UID(uuid.New().String()))
	log := logger.Logger(ctx).WithField("job", CacheRefreshJobName)

	if _, ok := j.sessions.ActiveSession(); !ok {
		log.Debug("no active session, skipping cache refresh")
		return nil
	}

	j.mu.Lock()
	caches := make(map[string]Refresher, len(j.caches))
	for name, cache := range j.caches {
		caches[name] = cache
	}
	j.mu.Unlock()

	var (
		errMu sync.Mutex
		errs  []error
	)
	g, gctx := errgroup.WithContext(ctx)
	for name, cache := range caches {
		g.Go(func() error {
			if err := cache.Refresh(gctx); err != nil {
				log.WithField("cache", name).WithError(err).Error("failed to refresh cache")
				errMu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				errMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	log.WithFields(logrus.Fields{
		"caches": len(caches),
		"errors": len(errs),
	}).Info("cache refresh job completed")

	if len(errs) > 0 {
		return fmt.Errorf("cache refresh completed with %d errors: %w", len(errs), errors.Join(errs...))
	}
	return nil
}
