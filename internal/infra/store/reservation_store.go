package store

import (
	"sort"
	"sync"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"

	"github.com/google/uuid"
)

// ReservationStore is a guarded in-memory collection. It holds no business
// rules; every value going in or out is a copy.
type ReservationStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*reservation.Reservation
	bySlot map[slot.ID][]uuid.UUID
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		byID:   make(map[uuid.UUID]*reservation.Reservation),
		bySlot: make(map[slot.ID][]uuid.UUID),
	}
}

func (s *ReservationStore) CountActive(slotID slot.ID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, id := range s.bySlot[slotID] {
		if s.byID[id].IsActive() {
			n++
		}
	}
	return n
}

func (s *ReservationStore) Insert(r *reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[r.ID()]; exists {
		return infra.NewError(infra.KindDuplicateKey, "reservation "+r.ID().String()+" already exists")
	}
	s.byID[r.ID()] = r.Clone()
	s.bySlot[r.SlotID()] = append(s.bySlot[r.SlotID()], r.ID())
	return nil
}

func (s *ReservationStore) Get(id uuid.UUID) (*reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, infra.NewError(infra.KindNotFound, "reservation "+id.String()+" not found")
	}
	return r.Clone(), nil
}

// Transition is a compare-and-swap on the status. It fails with
// KindStateMismatch when the stored status is not from.
func (s *ReservationStore) Transition(id uuid.UUID, from, to reservation.Status, at time.Time) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, infra.NewError(infra.KindNotFound, "reservation "+id.String()+" not found")
	}
	if r.Status() != from {
		return nil, infra.NewError(infra.KindStateMismatch,
			"reservation "+id.String()+" is "+r.Status().String()+", expected "+from.String())
	}
	r.Apply(to, at)
	return r.Clone(), nil
}

// ListBySlot returns snapshots in insertion order.
func (s *ReservationStore) ListBySlot(slotID slot.ID) []*reservation.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.bySlot[slotID]
	out := make([]*reservation.Reservation, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id].Clone())
	}
	return out
}

// ListPending returns pending snapshots ordered by deadline.
func (s *ReservationStore) ListPending(slotID slot.ID) []*reservation.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*reservation.Reservation
	for _, id := range s.bySlot[slotID] {
		if r := s.byID[id]; r.Status() == reservation.StatusPending {
			out = append(out, r.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PaymentDeadline().Before(out[j].PaymentDeadline())
	})
	return out
}

func (s *ReservationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
