package queries

import (
	"context"
	"sort"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.New("invalid cursor")

// Read models (DTO for read side)
type ReservationView struct {
	ID               uuid.UUID `json:"id"`
	SlotID           string    `json:"slot_id"`
	PlayerName       string    `json:"player_name"`
	PlayerAge        int       `json:"player_age"`
	GuardianName     string    `json:"guardian_name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	PaymentDeadline  time.Time `json:"payment_deadline"`
	UpdatedAt        time.Time `json:"updated_at"`
	RemainingSeconds int64     `json:"remaining_seconds"`
	// pending but past its deadline, waiting for the next sweep
	Overdue bool `json:"overdue"`
}

type ReservationReadStore interface {
	Get(id uuid.UUID) (*reservation.Reservation, error)
	ListBySlot(slotID slot.ID) []*reservation.Reservation
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListBySlot(ctx context.Context, slotID string, after *Cursor, limit int) ([]*ReservationView, *Cursor, error)
}

type reservationQueriesImpl struct {
	store   ReservationReadStore
	catalog SlotReadStore
	clock   clock.Clock
}

func NewReservationQueries(store ReservationReadStore, catalog SlotReadStore, clock clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{store: store, catalog: catalog, clock: clock}
}

func (q *reservationQueriesImpl) GetByID(_ context.Context, id uuid.UUID) (*ReservationView, error) {
	r, err := q.store.Get(id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrap(shared.ErrReservationNotFound, id.String())
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}
	return ToReservationView(r, q.clock.Now()), nil
}

func (q *reservationQueriesImpl) ListBySlot(_ context.Context, slotID string, after *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	if _, err := q.catalog.Get(slot.ID(slotID)); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Wrap(shared.ErrSlotNotFound, slotID)
		}
		return nil, nil, errs.Wrap(err, "failed to find slot")
	}

	limit = ValidateLimit(limit)
	rows := q.store.ListBySlot(slot.ID(slotID))
	sort.SliceStable(rows, func(i, j int) bool {
		return isAfter(rows[j], rows[i].CreatedAt(), rows[i].ID())
	})

	start := 0
	if after != nil && after.After != "" {
		afterTime, afterID, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, errs.Mark(err, ErrInvalidCursor)
		}
		start = len(rows)
		for i, r := range rows {
			if isAfter(r, afterTime, afterID) {
				start = i
				break
			}
		}
	}

	now := q.clock.Now()
	end := min(start+limit, len(rows))
	items := make([]*ReservationView, 0, end-start)
	for _, r := range rows[start:end] {
		items = append(items, ToReservationView(r, now))
	}

	var next *Cursor
	if end < len(rows) && len(items) > 0 {
		last := rows[end-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
	}
	return items, next, nil
}

// keyset order is (createdAt, id)
func isAfter(r *reservation.Reservation, t time.Time, id uuid.UUID) bool {
	if r.CreatedAt().UnixNano() != t.UnixNano() {
		return r.CreatedAt().UnixNano() > t.UnixNano()
	}
	return r.ID().String() > id.String()
}

func ToReservationView(r *reservation.Reservation, now time.Time) *ReservationView {
	return &ReservationView{
		ID:               r.ID(),
		SlotID:           r.SlotID().String(),
		PlayerName:       r.Player().Name(),
		PlayerAge:        r.Player().Age(),
		GuardianName:     r.Contact().GuardianName(),
		Phone:            r.Contact().Phone(),
		Email:            r.Contact().Email(),
		Status:           r.Status().String(),
		CreatedAt:        r.CreatedAt(),
		PaymentDeadline:  r.PaymentDeadline(),
		UpdatedAt:        r.UpdatedAt(),
		RemainingSeconds: int64(r.Remaining(now) / time.Second),
		Overdue:          r.IsEvictable(now),
	}
}
