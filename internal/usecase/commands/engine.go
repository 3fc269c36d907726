package commands

import (
	"context"
	"sync"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSlotFull         = errs.New("slot is full")
	ErrDomainValidation = errs.New("domain validation error")
)

// ReservationEngine is the only writer of reservations. Every mutation of a
// slot's reservations runs under that slot's mutex, so count -> admit -> insert
// cannot interleave with another reserve, confirm, cancel or eviction.
type ReservationEngine struct {
	catalog SlotCatalog
	store   ReservationStore
	factory *reservation.Factory
	locks   map[slot.ID]*sync.Mutex
}

func NewReservationEngine(catalog SlotCatalog, store ReservationStore, factory *reservation.Factory) *ReservationEngine {
	slots := catalog.List()
	locks := make(map[slot.ID]*sync.Mutex, len(slots))
	for _, s := range slots {
		locks[s.ID()] = &sync.Mutex{}
	}
	return &ReservationEngine{
		catalog: catalog,
		store:   store,
		factory: factory,
		locks:   locks,
	}
}

func (e *ReservationEngine) HoldDuration() time.Duration {
	return e.factory.HoldDuration
}

func (e *ReservationEngine) Reserve(
	ctx context.Context,
	slotID slot.ID,
	player reservation.Player,
	contact reservation.Contact,
	now time.Time,
) (*reservation.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slotEntity, err := e.getSlot(slotID)
	if err != nil {
		return nil, err
	}

	res, err := e.factory.CreateReservation(slotEntity, player, contact, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	mu, err := e.lockFor(slotID)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()

	if active := e.store.CountActive(slotID); active >= slotEntity.Capacity() {
		return nil, errs.Wrapf(ErrSlotFull, "slot %s has %d of %d places taken", slotID, active, slotEntity.Capacity())
	}

	if err := e.store.Insert(res); err != nil {
		return nil, errs.Wrap(err, "failed to store reservation")
	}

	return res.Clone(), nil
}

// Confirm enforces the payment deadline at the point of use, independent of
// whether the expiry sweep has run.
func (e *ReservationEngine) Confirm(ctx context.Context, id uuid.UUID, now time.Time) (*reservation.Reservation, error) {
	return e.withReservation(ctx, id, func(cur *reservation.Reservation) (*reservation.Reservation, error) {
		if err := cur.CanConfirm(now); err != nil {
			return nil, err
		}
		return e.transition(cur, reservation.StatusConfirmed, now, "confirm")
	})
}

// Cancel works from pending or confirmed and frees the place immediately.
func (e *ReservationEngine) Cancel(ctx context.Context, id uuid.UUID, now time.Time) (*reservation.Reservation, error) {
	return e.withReservation(ctx, id, func(cur *reservation.Reservation) (*reservation.Reservation, error) {
		if err := cur.CanCancel(); err != nil {
			return nil, err
		}
		return e.transition(cur, reservation.StatusCancelled, now, "cancel")
	})
}

// EvictExpired moves every pending reservation whose deadline is before now to
// expired. Already expired, confirmed and cancelled reservations are left alone,
// so repeated calls with the same now are no-ops.
func (e *ReservationEngine) EvictExpired(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	var evicted []*reservation.Reservation
	for _, s := range e.catalog.List() {
		if err := ctx.Err(); err != nil {
			return evicted, err
		}
		evicted = append(evicted, e.evictSlot(s.ID(), now)...)
	}
	return evicted, nil
}

func (e *ReservationEngine) evictSlot(slotID slot.ID, now time.Time) []*reservation.Reservation {
	mu, err := e.lockFor(slotID)
	if err != nil {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()

	var out []*reservation.Reservation
	for _, r := range e.store.ListPending(slotID) {
		if !r.IsEvictable(now) {
			// pending list is ordered by deadline
			break
		}
		expired, err := e.store.Transition(r.ID(), reservation.StatusPending, reservation.StatusExpired, now)
		if err != nil {
			continue
		}
		out = append(out, expired)
	}
	return out
}

func (e *ReservationEngine) withReservation(
	ctx context.Context,
	id uuid.UUID,
	fn func(cur *reservation.Reservation) (*reservation.Reservation, error),
) (*reservation.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cur, err := e.getReservation(id)
	if err != nil {
		return nil, err
	}

	mu, err := e.lockFor(cur.SlotID())
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()

	// re-read under the slot lock; the first read only located the slot
	cur, err = e.getReservation(id)
	if err != nil {
		return nil, err
	}
	return fn(cur)
}

func (e *ReservationEngine) transition(cur *reservation.Reservation, to reservation.Status, now time.Time, op string) (*reservation.Reservation, error) {
	next, err := e.store.Transition(cur.ID(), cur.Status(), to, now)
	if err != nil {
		if infra.IsKind(err, infra.KindStateMismatch) {
			return nil, &reservation.InvalidStateError{Op: op, Current: cur.Status()}
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrap(shared.ErrReservationNotFound, cur.ID().String())
		}
		return nil, errs.Wrap(err, "failed to update reservation")
	}
	return next, nil
}

func (e *ReservationEngine) getSlot(id slot.ID) (*slot.Slot, error) {
	s, err := e.catalog.Get(id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrap(shared.ErrSlotNotFound, id.String())
		}
		return nil, errs.Wrap(err, "failed to find slot")
	}
	return s, nil
}

func (e *ReservationEngine) getReservation(id uuid.UUID) (*reservation.Reservation, error) {
	r, err := e.store.Get(id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrap(shared.ErrReservationNotFound, id.String())
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}
	return r, nil
}

func (e *ReservationEngine) lockFor(id slot.ID) (*sync.Mutex, error) {
	mu, ok := e.locks[id]
	if !ok {
		return nil, errs.Wrap(shared.ErrSlotNotFound, id.String())
	}
	return mu, nil
}
