package commands

import (
	"context"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"

	"github.com/google/uuid"
)

type SlotCatalog interface {
	Get(id slot.ID) (*slot.Slot, error)
	List() []*slot.Slot
}

// ReservationStore is written only by ReservationEngine.
type ReservationStore interface {
	CountActive(slotID slot.ID) int
	Insert(r *reservation.Reservation) error
	Get(id uuid.UUID) (*reservation.Reservation, error)
	Transition(id uuid.UUID, from, to reservation.Status, at time.Time) (*reservation.Reservation, error)
	ListPending(slotID slot.ID) []*reservation.Reservation
}

type EventKind string

const (
	EventReservationCreated   EventKind = "reservation.created"
	EventReservationConfirmed EventKind = "reservation.confirmed"
	EventReservationCancelled EventKind = "reservation.cancelled"
	EventReservationExpired   EventKind = "reservation.expired"
)

// Event is what the guardian notification collaborator receives.
type Event struct {
	Kind            EventKind `json:"kind"`
	ReservationID   uuid.UUID `json:"reservationId"`
	SlotID          string    `json:"slotId"`
	Status          string    `json:"status"`
	PlayerName      string    `json:"playerName"`
	GuardianName    string    `json:"guardianName"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	PaymentDeadline time.Time `json:"paymentDeadline"`
	OccurredAt      time.Time `json:"occurredAt"`
}

func NewEvent(kind EventKind, r *reservation.Reservation, at time.Time) Event {
	return Event{
		Kind:            kind,
		ReservationID:   r.ID(),
		SlotID:          r.SlotID().String(),
		Status:          r.Status().String(),
		PlayerName:      r.Player().Name(),
		GuardianName:    r.Contact().GuardianName(),
		Phone:           r.Contact().Phone(),
		Email:           r.Contact().Email(),
		PaymentDeadline: r.PaymentDeadline(),
		OccurredAt:      at,
	}
}

type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

type CreateReservationResult struct {
	ReservationID   uuid.UUID
	PaymentDeadline time.Time
}

type SweepResult struct {
	Evicted []uuid.UUID
}

func (r *SweepResult) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Evicted)
}
