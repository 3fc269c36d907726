package budget

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("category name is required")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
	ErrNegativeBudget    = errors.New("budget amount cannot be negative")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("duplicate category id")
	ErrOverAllocation    = errors.New("category percentages exceed 100")
)

// Category is one percentage slice of a budget. BudgetAmountCents is in minor
// currency units.
type Category struct {
	ID                uuid.UUID
	Name              string
	Percentage        float64
	BudgetAmountCents int64
	Color             string
	Description       string
	Order             int
	IsActive          bool
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Percentage < 0 || c.Percentage > 100 {
		return ErrInvalidPercentage
	}
	if c.BudgetAmountCents < 0 {
		return ErrNegativeBudget
	}
	return nil
}
