package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/redhat-data-and-ai/repobridge/internal/periodicjobs"
	"github.com/redhat-data-and-ai/repobridge/pkg/config"
)

type refreshEvent struct {
	Cache       string    `json:"cache"`
	Count       int       `json:"count"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// Watch keeps a session open and refreshes the user and group caches on an
// interval until ctx is canceled, writing one line per completed refresh
func Watch(ctx context.Context, appCfg *config.AppConfig, cfg WatchConfig, out io.Writer) error {
	_, err := withSession(ctx, appCfg, cfg.SessionConfig, func(ctx context.Context, rt *Runtime) (string, error) {
		interval := cfg.interval
		if interval <= 0 {
			interval = appCfg.Jobs.CacheRefreshInterval
		}

		var mu sync.Mutex
		report := func(name string, count int, refreshedAt time.Time) {
			mu.Lock()
			defer mu.Unlock()

			if cfg.outputType == jsonOutputType {
				line, err := json.Marshal(refreshEvent{Cache: name, Count: count, RefreshedAt: refreshedAt})
				if err == nil {
					fmt.Fprintln(out, string(line))
				}
				return
			}
			fmt.Fprintf(out, "%s\t%s\t%d\n", refreshedAt.Format(time.RFC3339), name, count)
		}

		rt.Users.OnRefresh(func() {
			at, _ := rt.Users.GetLastRefresh()
			report("users", rt.Users.Len(), at)
		})
		rt.Groups.OnRefresh(func() {
			at, _ := rt.Groups.GetLastRefresh()
			report("groups", rt.Groups.Len(), at)
		})

		job := periodicjobs.NewCacheRefreshJob(rt.Conn, interval)
		job.AddCache("users", rt.Users)
		job.AddCache("groups", rt.Groups)

		mgr := periodicjobs.NewPeriodicTaskManager(true)
		job.AddToPeriodicTaskManager(mgr)
		mgr.Start(ctx)

		return "", nil
	})
	return err
}
