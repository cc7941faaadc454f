package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger is implemented by backends that do not expire entries on their own.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// RunJanitor purges expired entries every interval until ctx is done.
func RunJanitor(ctx context.Context, purger Purger, interval time.Duration, logger *zap.Logger) {
	if purger == nil || interval <= 0 {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Debug("purged expired session entries", zap.Int64("removed", removed))
			}
		}
	}
}
