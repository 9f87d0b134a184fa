package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/sentiview/internal/clients"
)

// MonitorServiceHealth polls the service liveness endpoint on a fixed
// interval and flips the healthy flag. Probe failures only flip the flag;
// they are never propagated and never interfere with user-initiated calls.
func MonitorServiceHealth(ctx context.Context, interval time.Duration, client *clients.SentimentClient, healthy *atomic.Bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := client.CheckHealth(ctx)
			wasHealthy := healthy.Load()
			healthy.Store(err == nil)
			if err != nil {
				slog.Warn("[HealthCheck] Sentiment service is unavailable",
					slog.String("error", err.Error()))
			} else if !wasHealthy {
				slog.Info("[HealthCheck] Sentiment service is back")
			}
		}
	}
}
