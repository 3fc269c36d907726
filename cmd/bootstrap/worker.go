package bootstrap

import (
	"context"
	"log/slog"

	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewExpiryScanner,
	),
)

func NewExpiryScanner(lc fx.Lifecycle, cmds commands.BookingCommands, clk clock.Clock, cfg config.BookingConfig, logger *slog.Logger) *worker.ExpiryScanner {
	scanner := worker.NewExpiryScanner(cmds, clk, worker.ExpiryScannerConfig{
		Interval: cfg.ScanInterval,
	}, logger)

	// the start context expires with the start timeout, so the loop gets its own
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return scanner.Start(ctx)
		},
		OnStop: func(_ context.Context) error {
			scanner.Stop()
			cancel()
			return nil
		},
	})
	return scanner
}
