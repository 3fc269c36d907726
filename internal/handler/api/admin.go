package api

import (
	"net/http"

	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/worker"

	"github.com/gin-gonic/gin"
)

type ScannerStats interface {
	Stats() worker.ExpiryScannerStats
}

type AdminHandler struct {
	cmds    commands.BookingCommands
	scanner ScannerStats
}

func NewAdminHandler(cmds commands.BookingCommands, scanner ScannerStats) *AdminHandler {
	return &AdminHandler{cmds: cmds, scanner: scanner}
}

// @Summary Sweep expired holds
// @Description Evicts every pending reservation whose payment deadline has passed
// @Tags admin
// @Produce json
// @Success 200 {object} resdto.SweepResponse
// @Failure 500 {object} httperr.Response
// @Router /admin/reservations/sweep [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	result, err := h.cmds.EvictExpired(c.Request.Context())
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}

// @Summary Expiry scanner status
// @Tags admin
// @Produce json
// @Success 200 {object} resdto.ScannerStatsResponse
// @Router /admin/scanner [get]
func (h *AdminHandler) ScannerStats(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromScannerStats(h.scanner.Stats()))
}
