package reservation

import (
	"time"

	"slot-booking/internal/domain/slot"

	"github.com/google/uuid"
)

type Reservation struct {
	id              uuid.UUID
	slotID          slot.ID
	player          Player
	contact         Contact
	status          Status
	createdAt       time.Time
	paymentDeadline time.Time
	updatedAt       time.Time
}

func NewReservation(
	s *slot.Slot,
	player Player,
	contact Contact,
	now time.Time,
	holdDuration time.Duration,
) (*Reservation, error) {
	if holdDuration <= 0 {
		return nil, ErrInvalidHold
	}
	if !s.Admits(player.Age()) {
		return nil, &IneligibleAgeError{Age: player.Age(), Range: s.AgeRange()}
	}
	if player.name == "" {
		return nil, ErrMissingPlayerName
	}
	if contact.guardianName == "" || contact.phone == "" || contact.email == "" {
		return nil, ErrIncompleteContact
	}

	return &Reservation{
		id:              uuid.New(),
		slotID:          s.ID(),
		player:          player,
		contact:         contact,
		status:          StatusPending,
		createdAt:       now,
		paymentDeadline: now.Add(holdDuration),
		updatedAt:       now,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	slotID slot.ID,
	player Player,
	contact Contact,
	status Status,
	createdAt, paymentDeadline, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		slotID:          slotID,
		player:          player,
		contact:         contact,
		status:          status,
		createdAt:       createdAt,
		paymentDeadline: paymentDeadline,
		updatedAt:       updatedAt,
	}
}

// CanConfirm checks the deadline itself so a late payment is refused even when
// no sweep has run yet. The deadline instant is still confirmable.
func (r *Reservation) CanConfirm(now time.Time) error {
	if r.status != StatusPending {
		return &InvalidStateError{Op: "confirm", Current: r.status}
	}
	if now.After(r.paymentDeadline) {
		return ErrExpired
	}
	return nil
}

func (r *Reservation) CanCancel() error {
	if !r.status.CanTransitionTo(StatusCancelled) {
		return &InvalidStateError{Op: "cancel", Current: r.status}
	}
	return nil
}

// IsEvictable is strict: a hold is evicted only once now is past the deadline.
func (r *Reservation) IsEvictable(now time.Time) bool {
	return r.status == StatusPending && r.paymentDeadline.Before(now)
}

// Remaining is the countdown shown to the guardian; zero once past the deadline
// or when the reservation is no longer pending.
func (r *Reservation) Remaining(now time.Time) time.Duration {
	if r.status != StatusPending {
		return 0
	}
	d := r.paymentDeadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Apply moves the reservation to the given state. It does not check the
// lifecycle; callers validate with CanConfirm/CanCancel/IsEvictable first.
func (r *Reservation) Apply(to Status, at time.Time) {
	r.status = to
	r.updatedAt = at
}

func (r *Reservation) Clone() *Reservation {
	c := *r
	return &c
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) ID() uuid.UUID              { return r.id }
func (r *Reservation) SlotID() slot.ID            { return r.slotID }
func (r *Reservation) Player() Player             { return r.player }
func (r *Reservation) Contact() Contact           { return r.contact }
func (r *Reservation) Status() Status             { return r.status }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) PaymentDeadline() time.Time { return r.paymentDeadline }
func (r *Reservation) UpdatedAt() time.Time       { return r.updatedAt }
