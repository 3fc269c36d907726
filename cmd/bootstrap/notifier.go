package bootstrap

import (
	"context"
	"log/slog"

	"slot-booking/internal/infra/notifier"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewNotifier,
	),
)

// NewNotifier picks the guardian notification channel. The broker connection
// is closed when the app stops.
func NewNotifier(lc fx.Lifecycle, cfg config.NotifierConfig, logger *slog.Logger) (commands.Notifier, error) {
	if cfg.Driver != config.NotifierDriverAMQP {
		return notifier.NewLogNotifier(logger), nil
	}

	n, err := notifier.NewAMQPNotifier(cfg.AMQPURL, cfg.Exchange, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return n.Close()
		},
	})
	return n, nil
}
