package queries

import (
	"context"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"
)

type SlotView struct {
	ID         string    `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	MinAge     int       `json:"min_age"`
	MaxAge     int       `json:"max_age"`
	Format     string    `json:"format"`
	Capacity   int       `json:"capacity"`
	Pending    int       `json:"pending"`
	Confirmed  int       `json:"confirmed"`
	Remaining  int       `json:"remaining"`
	IsFull     bool      `json:"is_full"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `json:"currency"`
}

type SlotReadStore interface {
	Get(id slot.ID) (*slot.Slot, error)
	List() []*slot.Slot
}

type SlotQueries interface {
	GetByID(ctx context.Context, id string) (*SlotView, error)
	List(ctx context.Context) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	catalog      SlotReadStore
	reservations ReservationReadStore
	clock        clock.Clock
}

func NewSlotQueries(catalog SlotReadStore, reservations ReservationReadStore, clock clock.Clock) SlotQueries {
	return &slotQueriesImpl{catalog: catalog, reservations: reservations, clock: clock}
}

func (q *slotQueriesImpl) GetByID(_ context.Context, id string) (*SlotView, error) {
	s, err := q.catalog.Get(slot.ID(id))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrap(shared.ErrSlotNotFound, id)
		}
		return nil, errs.Wrap(err, "failed to find slot")
	}
	return q.toView(s, q.clock.Now()), nil
}

func (q *slotQueriesImpl) List(_ context.Context) ([]*SlotView, error) {
	now := q.clock.Now()
	slots := q.catalog.List()
	out := make([]*SlotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, q.toView(s, now))
	}
	return out, nil
}

// Occupancy leaves out holds already past their deadline: the next reserve
// sweeps them before admission, so the place is effectively free.
func (q *slotQueriesImpl) toView(s *slot.Slot, now time.Time) *SlotView {
	var pending, confirmed int
	for _, r := range q.reservations.ListBySlot(s.ID()) {
		switch {
		case r.IsEvictable(now):
		case r.Status() == reservation.StatusPending:
			pending++
		case r.Status() == reservation.StatusConfirmed:
			confirmed++
		}
	}
	remaining := max(s.Capacity()-pending-confirmed, 0)

	return &SlotView{
		ID:         s.ID().String(),
		Start:      s.TimeRange().Start(),
		End:        s.TimeRange().End(),
		MinAge:     s.AgeRange().Min(),
		MaxAge:     s.AgeRange().Max(),
		Format:     s.Format().String(),
		Capacity:   s.Capacity(),
		Pending:    pending,
		Confirmed:  confirmed,
		Remaining:  remaining,
		IsFull:     remaining == 0,
		PriceCents: s.Price().Cents(),
		Currency:   s.Price().Currency(),
	}
}
