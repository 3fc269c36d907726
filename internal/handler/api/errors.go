package api

import (
	"errors"
	"net/http"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"
	"slot-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// abortWithBookingError maps engine and query failures onto statuses.
func abortWithBookingError(c *gin.Context, err error) {
	var ageErr *reservation.IneligibleAgeError
	var stateErr *reservation.InvalidStateError

	switch {
	case errs.Is(err, shared.ErrSlotNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
	case errs.Is(err, shared.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.As(err, &ageErr):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Player age not eligible for slot", gin.H{
			"age":    ageErr.Age,
			"minAge": ageErr.Range.Min(),
			"maxAge": ageErr.Range.Max(),
		})
	case errs.Is(err, commands.ErrSlotFull):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot is full", nil)
	case errs.Is(err, reservation.ErrExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Payment deadline passed", nil)
	case errors.As(err, &stateErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid reservation state", gin.H{
			"operation": stateErr.Op,
			"status":    stateErr.Current.String(),
		})
	case errs.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errs.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
