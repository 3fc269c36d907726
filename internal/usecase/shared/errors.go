package shared

import "slot-booking/internal/pkg/errs"

// Lookup failures shared by the command and query sides.
var (
	ErrSlotNotFound        = errs.New("slot not found")
	ErrReservationNotFound = errs.New("reservation not found")
)
