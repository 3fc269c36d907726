package reservation

import (
	"time"

	"slot-booking/internal/domain/slot"
)

type Factory struct {
	HoldDuration time.Duration
}

const DefaultHoldDuration = 20 * time.Minute

func NewFactory(holdDuration time.Duration) *Factory {
	if holdDuration <= 0 {
		holdDuration = DefaultHoldDuration
	}
	return &Factory{
		HoldDuration: holdDuration,
	}
}

func (f *Factory) CreateReservation(
	slotEntity *slot.Slot,
	player Player,
	contact Contact,
	now time.Time,
) (*Reservation, error) {
	return NewReservation(slotEntity, player, contact, now, f.HoldDuration)
}
