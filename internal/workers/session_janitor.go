package workers

import (
	"context"
	"time"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/session"
)

// SessionJanitor periodically removes expired hidden-notes unlock flags from
// the session store. Expired flags are already treated as locked on read;
// the janitor only keeps the store from growing with dead entries.
type SessionJanitor struct {
	ctx      context.Context
	sessions session.Store
	interval time.Duration
	logger   *logger.Logger
}

// NewSessionJanitor constructs a janitor purging the given store every
// interval until ctx is cancelled.
func NewSessionJanitor(ctx context.Context, sessions session.Store, interval time.Duration, logger *logger.Logger) *SessionJanitor {
	return &SessionJanitor{
		ctx:      ctx,
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the purge loop in its own goroutine and returns immediately.
func (j *SessionJanitor) Run() {
	go j.loop()
}

func (j *SessionJanitor) loop() {
	j.logger.Info().Dur("interval", j.interval).Msg("session janitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.ctx.Done():
			j.logger.Info().Msg("session janitor stopped")
			return
		case <-ticker.C:
			if purged := j.sessions.PurgeExpired(j.ctx); purged > 0 {
				j.logger.Debug().Int("purged", purged).Msg("expired session unlocks removed")
			}
		}
	}
}
