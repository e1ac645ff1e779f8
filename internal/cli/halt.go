package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/locus/pkg/ports"
)

// WatchHalt derives a context that is cancelled once src reports a halt.
// The source is polled every interval; poll errors are logged and the
// watch continues. The returned cancel func stops the watcher.
func WatchHalt(parent context.Context, src ports.HaltSource, interval time.Duration, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				halted, err := src.Halted(ctx)
				if err != nil {
					if ctx.Err() == nil {
						logger.Warn("halt poll failed", "error", err)
					}
					continue
				}
				if halted {
					logger.Info("halt flag raised, cancelling run")
					cancel()
					return
				}
			}
		}
	}()

	return ctx, cancel
}
