package workers

import (
	"context"

	"github.com/notelock/notelock/internal/config"
	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/session"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers of the server. Currently that
// is only the session janitor; a zero cleanup interval disables it.
func NewWorkers(ctx context.Context, sessions session.Store, cfg config.Workers, logger *logger.Logger) *Workers {
	var list []Worker

	if cfg.SessionCleanupInterval > 0 {
		list = append(list, NewSessionJanitor(ctx, sessions, cfg.SessionCleanupInterval, logger))
	}

	return &Workers{workers: list}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
