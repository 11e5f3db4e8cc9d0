package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/JonMunkholm/sheetcart/internal/logging"
)

// StartRefresh reloads the catalog every interval until ctx is cancelled.
// Failed or suppressed loads are logged by Load and do not stop the loop.
// A non-positive interval returns immediately.
func (l *Loader) StartRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	logger := logging.FromContext(ctx)
	logger.Info("catalog refresh started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("catalog refresh stopped")
			return
		case <-ticker.C:
			if _, err := l.Load(ctx); err != nil && !errors.Is(err, ErrLoadInProgress) {
				logger.Debug("scheduled catalog load failed", "error", err)
			}
		}
	}
}
