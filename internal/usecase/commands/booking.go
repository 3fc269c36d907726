package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	reqdto "slot-booking/internal/handler/dto/request"
	"slot-booking/internal/metrics"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	Reserve(ctx context.Context, slotID string, req reqdto.CreateReservationRequest) (*CreateReservationResult, error)
	Confirm(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
	EvictExpired(ctx context.Context) (*SweepResult, error)
}

// bookingCommandsImpl wraps the engine with the application concerns the core
// leaves out: time source, notifications, metrics and logging.
type bookingCommandsImpl struct {
	engine   *ReservationEngine
	notifier Notifier
	metrics  *metrics.BookingMetrics
	clock    clock.Clock
	logger   *slog.Logger
}

func NewBookingCommands(
	engine *ReservationEngine,
	notifier Notifier,
	m *metrics.BookingMetrics,
	clock clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingCommandsImpl{
		engine:   engine,
		notifier: notifier,
		metrics:  m,
		clock:    clock,
		logger:   logger,
	}
}

func (b *bookingCommandsImpl) Reserve(
	ctx context.Context,
	slotID string,
	req reqdto.CreateReservationRequest,
) (*CreateReservationResult, error) {
	player, contact, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	now := b.clock.Now()

	// free stale holds first so a slot blocked only by expired holds admits
	if _, err := b.evict(ctx, now); err != nil {
		return nil, err
	}

	res, err := b.engine.Reserve(ctx, slot.ID(slotID), player, contact, now)
	if err != nil {
		b.metrics.Rejected(ctx, slotID, rejectionReason(err))
		b.logger.Info("reservation rejected",
			slog.String("slot_id", slotID),
			slog.Int("player_age", player.Age()),
			slog.String("reason", rejectionReason(err)),
		)
		return nil, err
	}

	b.metrics.Reserved(ctx, slotID)
	b.logger.Info("reservation created",
		slog.String("reservation_id", res.ID().String()),
		slog.String("slot_id", slotID),
		slog.Time("payment_deadline", res.PaymentDeadline()),
	)
	b.notify(ctx, EventReservationCreated, res, now)

	return &CreateReservationResult{
		ReservationID:   res.ID(),
		PaymentDeadline: res.PaymentDeadline(),
	}, nil
}

func (b *bookingCommandsImpl) Confirm(ctx context.Context, id uuid.UUID) error {
	now := b.clock.Now()
	res, err := b.engine.Confirm(ctx, id, now)
	if err != nil {
		b.logger.Info("confirmation refused",
			slog.String("reservation_id", id.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	b.metrics.Confirmed(ctx, res.SlotID().String())
	b.logger.Info("reservation confirmed", slog.String("reservation_id", id.String()))
	b.notify(ctx, EventReservationConfirmed, res, now)
	return nil
}

func (b *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	now := b.clock.Now()
	res, err := b.engine.Cancel(ctx, id, now)
	if err != nil {
		return err
	}

	b.metrics.Cancelled(ctx, res.SlotID().String())
	b.logger.Info("reservation cancelled", slog.String("reservation_id", id.String()))
	b.notify(ctx, EventReservationCancelled, res, now)
	return nil
}

func (b *bookingCommandsImpl) EvictExpired(ctx context.Context) (*SweepResult, error) {
	return b.evict(ctx, b.clock.Now())
}

func (b *bookingCommandsImpl) evict(ctx context.Context, now time.Time) (*SweepResult, error) {
	evicted, err := b.engine.EvictExpired(ctx, now)
	b.metrics.Swept(ctx)

	result := &SweepResult{Evicted: make([]uuid.UUID, 0, len(evicted))}
	perSlot := make(map[string]int)
	for _, r := range evicted {
		result.Evicted = append(result.Evicted, r.ID())
		perSlot[r.SlotID().String()]++
		b.notify(ctx, EventReservationExpired, r, now)
	}
	for slotID, n := range perSlot {
		b.metrics.Expired(ctx, slotID, n)
	}
	if len(evicted) > 0 {
		b.logger.Info("expired reservations evicted", slog.Int("count", len(evicted)))
	}

	if err != nil {
		return result, errs.Wrap(err, "expiry sweep interrupted")
	}
	return result, nil
}

// notification failures never undo a booking
func (b *bookingCommandsImpl) notify(ctx context.Context, kind EventKind, r *reservation.Reservation, at time.Time) {
	if b.notifier == nil {
		return
	}
	if err := b.notifier.Notify(ctx, NewEvent(kind, r, at)); err != nil {
		b.logger.Warn("failed to notify guardian",
			slog.String("kind", string(kind)),
			slog.String("reservation_id", r.ID().String()),
			slog.String("error", err.Error()),
		)
	}
}

func rejectionReason(err error) string {
	switch {
	case errs.Is(err, shared.ErrSlotNotFound):
		return "slot_not_found"
	case errors.Is(err, reservation.ErrIneligibleAge):
		return "ineligible_age"
	case errs.Is(err, ErrSlotFull):
		return "slot_full"
	case errs.Is(err, ErrDomainValidation):
		return "validation"
	default:
		return "internal"
	}
}
