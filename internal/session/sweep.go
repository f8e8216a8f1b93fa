package session

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper is implemented by stores that can drop idle sessions in bulk.
// Redis expires keys by itself and has no need for it.
type Sweeper interface {
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// Sweep deletes the sessions nobody has played for maxAge. Stores that are
// not a [Sweeper] report zero.
func (m *Manager) Sweep(ctx context.Context, maxAge time.Duration) (int64, error) {
	sw, ok := m.store.(Sweeper)
	if !ok {
		return 0, nil
	}
	return sw.DeleteStale(ctx, m.now().Add(-maxAge))
}

// RunSweeper calls [Manager.Sweep] every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval, maxAge time.Duration) error {
	if _, ok := m.store.(Sweeper); !ok || interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := m.Sweep(ctx, maxAge)
			if err != nil {
				m.logger.Error("unable to sweep sessions", slog.Any("error", err))
				continue
			}
			if n > 0 {
				m.logger.Info("swept idle sessions", slog.Int64("count", n))
			}
		}
	}
}
