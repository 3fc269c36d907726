package api

import (
	"net/http"

	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	q queries.SlotQueries
}

func NewSlotHandler(q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{q: q}
}

// @Summary List slots
// @Description All slots with live occupancy, ordered by start time
// @Tags slots
// @Produce json
// @Success 200 {array} resdto.SlotResponse
// @Router /slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	out := make([]*resdto.SlotResponse, 0, len(views))
	for _, v := range views {
		out = append(out, resdto.FromSlotView(v))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Get slot
// @Tags slots
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.SlotResponse
// @Failure 404 {object} httperr.Response
// @Router /slots/{id} [get]
func (h *SlotHandler) Get(c *gin.Context) {
	view, err := h.q.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotView(view))
}
