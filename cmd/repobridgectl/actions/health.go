package actions

import (
	"context"
	"strconv"

	"github.com/redhat-data-and-ai/repobridge/pkg/config"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
)

type health struct {
	Protocol string `json:"protocol"`
	URL      string `json:"url"`
	Ready    bool   `json:"ready"`
	Error    string `json:"error,omitempty"`
}

// Health probes both bridges
func Health(ctx context.Context, appCfg *config.AppConfig, cfg HealthConfig) (string, error) {
	ctx = newRequestContext(ctx)

	rt, err := NewRuntime(ctx, appCfg)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := rt.Close(ctx); err != nil {
			logger.Logger(ctx).WithError(err).Warn("failed to close bridge")
		}
	}()

	data := []health{}
	for _, status := range rt.Bridge.Status(ctx) {
		h := health{
			Protocol: status.Protocol.String(),
			URL:      status.BaseURL,
			Ready:    status.Ready,
		}
		if status.Err != nil {
			h.Error = status.Err.Error()
		}
		data = append(data, h)
	}

	return render(cfg.outputType, data, func() string {
		rows := [][]string{}
		for _, h := range data {
			rows = append(rows, []string{h.Protocol, h.URL, strconv.FormatBool(h.Ready), h.Error})
		}
		return getTable([]string{"Protocol", "URL", "Ready", "Error"}, rows)
	})
}
