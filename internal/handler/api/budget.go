package api

import (
	"net/http"

	"slot-booking/internal/domain/budget"
	reqdto "slot-booking/internal/handler/dto/request"
	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AllocationGuard interface {
	Validate(categories []budget.Category) budget.Result
	CheckEdit(categories []budget.Category, id uuid.UUID, percentage float64) budget.Result
}

type BudgetHandler struct {
	guard AllocationGuard
}

func NewBudgetHandler(guard AllocationGuard) *BudgetHandler {
	return &BudgetHandler{guard: guard}
}

// @Summary Validate budget allocation
// @Description Checks that active category percentages do not exceed 100
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateBudgetRequest true "Category set"
// @Success 200 {object} resdto.BudgetValidationResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/budget/validate [post]
func (h *BudgetHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	h.respond(c, h.guard.Validate(req.ToDomain()))
}

// @Summary Check a single percentage edit
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.CheckBudgetEditRequest true "Category set and proposed edit"
// @Success 200 {object} resdto.BudgetValidationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/budget/check-edit [post]
func (h *BudgetHandler) CheckEdit(c *gin.Context) {
	var req reqdto.CheckBudgetEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	categories := reqdto.ValidateBudgetRequest{Categories: req.Categories}.ToDomain()
	h.respond(c, h.guard.CheckEdit(categories, req.CategoryID, req.Percentage))
}

// over-allocation is a verdict, not a request error
func (h *BudgetHandler) respond(c *gin.Context, result budget.Result) {
	if result.Reason == budget.ReasonInvalid {
		if errs.Is(result.Cause, budget.ErrCategoryNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, result.Cause, "Category not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, result.Cause, "Invalid category", gin.H{"cause": result.Cause.Error()})
		return
	}
	c.JSON(http.StatusOK, resdto.FromBudgetResult(result))
}
