package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"staybook/internal/pkg/config"
	"staybook/internal/usecase/commands"

	"go.uber.org/fx"
)

var ReclaimerModule = fx.Module("reclaimer",
	fx.Invoke(StartReclaimer),
)

// StartReclaimer runs the hold-expiry sweep on a ticker. Lazy confirm-time
// expiry still works without it; the sweep keeps abandoned holds from
// inflating the ledger between confirm attempts.
func StartReclaimer(lc fx.Lifecycle, cfg config.Config, reclaim commands.ReclaimCommands, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.Booking.ReclaimInterval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						runSweep(ctx, reclaim, logger)
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func runSweep(ctx context.Context, reclaim commands.ReclaimCommands, logger *slog.Logger) {
	reclaimed, err := reclaim.ReclaimExpiredHolds(ctx)
	if err != nil {
		logger.Error("hold reclamation sweep failed", "error", err)
		return
	}
	purged, err := reclaim.PurgeIdempotencyKeys(ctx)
	if err != nil {
		logger.Error("idempotency purge failed", "error", err)
		return
	}
	if reclaimed > 0 || purged > 0 {
		logger.Info("reclamation sweep completed", "expired_holds", reclaimed, "purged_keys", purged)
	}
}
