package notifier

import (
	"context"
	"log/slog"

	"slot-booking/internal/usecase/commands"
)

// LogNotifier writes guardian notifications to the application log. It is the
// default when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event commands.Event) error {
	n.logger.LogAttrs(ctx, slog.LevelInfo, "guardian notification",
		slog.String("kind", string(event.Kind)),
		slog.String("reservation_id", event.ReservationID.String()),
		slog.String("slot_id", event.SlotID),
		slog.String("status", event.Status),
		slog.String("guardian", event.GuardianName),
		slog.String("email", event.Email),
		slog.Time("payment_deadline", event.PaymentDeadline),
	)
	return nil
}
