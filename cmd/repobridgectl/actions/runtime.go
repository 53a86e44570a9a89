package actions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redhat-data-and-ai/repobridge/pkg/bridge"
	"github.com/redhat-data-and-ai/repobridge/pkg/cache"
	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/config"
	"github.com/redhat-data-and-ai/repobridge/pkg/connection"
	"github.com/redhat-data-and-ai/repobridge/pkg/entitycache"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/redhat-data-and-ai/repobridge/pkg/store"
	"k8s.io/apimachinery/pkg/types"
)

// Runtime wires the bridge, the active connection and the entity caches
type Runtime struct {
	Config *config.AppConfig
	Bridge *bridge.Bridge
	Conn   *connection.Manager
	Users  *entitycache.UserCache
	Groups *entitycache.GroupCache

	kv cache.Cache
}

type disconnecter interface {
	Disconnect() error
}

func NewRuntime(ctx context.Context, cfg *config.AppConfig) (*Runtime, error) {
	kv, err := store.NewCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	b := bridge.New(cfg.Bridge, store.New(kv).GetSessionStore())
	conn := connection.NewManager(b)

	return &Runtime{
		Config: cfg,
		Bridge: b,
		Conn:   conn,
		Users:  entitycache.NewUserCache(b, conn),
		Groups: entitycache.NewGroupCache(b, conn),
		kv:     kv,
	}, nil
}

// Close disconnects the active session, sweeps whatever the bridge still
// tracks and releases the session store
func (r *Runtime) Close(ctx context.Context) error {
	err := r.Conn.Disconnect(ctx)
	if errors.Is(err, clients.ErrNoActiveSession) {
		err = nil
	}
	err = errors.Join(err, r.Bridge.Close(ctx))

	if d, ok := r.kv.(disconnecter); ok {
		err = errors.Join(err, d.Disconnect())
	}
	return err
}

func newRequestContext(ctx context.Context) context.Context {
	return logger.WithRequestId(ctx, types.UID(uuid.New().String()))
}

// withSession opens a session for the duration of fn
func withSession(ctx context.Context, appCfg *config.AppConfig, cfg SessionConfig, fn func(context.Context, *Runtime) (string, error)) (string, error) {
	ctx = newRequestContext(ctx)
	log := logger.Logger(ctx).WithField("target", cfg.params.String())

	rt, err := NewRuntime(ctx, appCfg)
	if err != nil {
		return "", err
	}

	if _, err := rt.Conn.Connect(ctx, cfg.params); err != nil {
		log.WithError(err).Error("failed to connect")
		return "", errors.Join(err, rt.Close(ctx))
	}
	defer func() {
		if err := rt.Close(context.WithoutCancel(ctx)); err != nil {
			log.WithError(err).Warn("failed to close session")
		}
	}()

	return fn(ctx, rt)
}
