package worker

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

// * Refresher re-runs the project batch
type Refresher interface {
	Refresh()
}

type RefreshWorker struct {
	refresher Refresher
	interval  time.Duration
}

func NewRefreshWorker(refresher Refresher, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		refresher: refresher,
		interval:  interval,
	}
}

// * Run refreshes on every tick until ctx is done. The initial batch is
// * started by the caller when it mounts the project list.
func (w *RefreshWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Debug("refreshing project list")
			w.refresher.Refresh()

		case <-ctx.Done():
			logger.Info("stopping refresh worker")
			return
		}
	}
}
