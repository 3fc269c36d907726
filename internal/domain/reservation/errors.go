package reservation

import (
	"errors"
	"fmt"

	"slot-booking/internal/domain/slot"
)

var (
	ErrIneligibleAge     = errors.New("player age outside slot age range")
	ErrInvalidState      = errors.New("operation not allowed in current reservation state")
	ErrExpired           = errors.New("payment deadline has passed")
	ErrMissingPlayerName = errors.New("player name is required")
	ErrInvalidAge        = errors.New("player age cannot be negative")
	ErrIncompleteContact = errors.New("guardian name, phone and email are required")
	ErrInvalidHold       = errors.New("hold duration must be positive")
)

// IneligibleAgeError reports the valid range back to the caller.
type IneligibleAgeError struct {
	Age   int
	Range slot.AgeRange
}

func (e *IneligibleAgeError) Error() string {
	return fmt.Sprintf("player age %d outside slot age range %s", e.Age, e.Range)
}

func (e *IneligibleAgeError) Is(target error) bool {
	return target == ErrIneligibleAge
}

// InvalidStateError names the state the reservation was found in.
type InvalidStateError struct {
	Op      string
	Current Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s reservation in state %s", e.Op, e.Current)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
