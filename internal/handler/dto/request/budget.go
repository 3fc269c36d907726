package request

import (
	"slot-booking/internal/domain/budget"
	"slot-booking/internal/pkg/ptr"

	"github.com/google/uuid"
)

type BudgetCategoryRequest struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name" binding:"required"`
	Percentage   float64   `json:"percentage"`
	BudgetAmount int64     `json:"budgetAmount"`
	Color        string    `json:"color"`
	Description  string    `json:"description"`
	Order        int       `json:"order"`
	// omitted means active
	IsActive *bool `json:"isActive"`
}

func (r BudgetCategoryRequest) ToDomain() budget.Category {
	return budget.Category{
		ID:                r.ID,
		Name:              r.Name,
		Percentage:        r.Percentage,
		BudgetAmountCents: r.BudgetAmount,
		Color:             r.Color,
		Description:       r.Description,
		Order:             r.Order,
		IsActive:          ptr.Deref(r.IsActive, true),
	}
}

type ValidateBudgetRequest struct {
	Categories []BudgetCategoryRequest `json:"categories" binding:"required,dive"`
}

func (r ValidateBudgetRequest) ToDomain() []budget.Category {
	out := make([]budget.Category, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, c.ToDomain())
	}
	return out
}

type CheckBudgetEditRequest struct {
	Categories []BudgetCategoryRequest `json:"categories" binding:"required,dive"`
	CategoryID uuid.UUID               `json:"categoryId" binding:"required"`
	Percentage float64                 `json:"percentage"`
}
