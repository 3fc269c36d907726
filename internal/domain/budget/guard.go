package budget

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Percentages are summed in hundredths of a percent so 33.3+33.3+33.4 is exactly 100.
const (
	hundredthsPerPercent = 100
	fullAllocation       = 100 * hundredthsPerPercent
)

const (
	ReasonBalanced       = "balanced"
	ReasonUnderAllocated = "under-allocated"
	ReasonOverAllocated  = "over-allocated"
	ReasonInvalid        = "invalid category"
)

type Result struct {
	OK              bool
	Balanced        bool
	TotalPercentage float64
	Reason          string
	// set when Reason is ReasonInvalid
	Cause error
}

func (r Result) Err() error {
	switch {
	case r.OK:
		return nil
	case r.Cause != nil:
		return r.Cause
	default:
		return &OverAllocationError{TotalPercentage: r.TotalPercentage}
	}
}

type OverAllocationError struct {
	TotalPercentage float64
}

func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("category percentages total %.2f%%, above 100%%", e.TotalPercentage)
}

func (e *OverAllocationError) Is(target error) bool {
	return target == ErrOverAllocation
}

type AllocationGuard struct{}

func NewAllocationGuard() *AllocationGuard {
	return &AllocationGuard{}
}

// Validate checks the complete set about to be persisted. Only active
// categories count toward the total. Under 100 is accepted with a warning.
func (g *AllocationGuard) Validate(categories []Category) Result {
	seen := make(map[uuid.UUID]struct{}, len(categories))
	var total int64
	for _, c := range categories {
		if err := c.Validate(); err != nil {
			return Result{Reason: ReasonInvalid, Cause: fmt.Errorf("%s: %w", c.Name, err)}
		}
		if c.ID != uuid.Nil {
			if _, dup := seen[c.ID]; dup {
				return Result{Reason: ReasonInvalid, Cause: fmt.Errorf("%s: %w", c.ID, ErrDuplicateCategory)}
			}
			seen[c.ID] = struct{}{}
		}
		if c.IsActive {
			total += toHundredths(c.Percentage)
		}
	}
	return evaluate(total)
}

// CheckEdit is the live single-field hint: the edited category's new value
// against the others' current values. It does not replace Validate on persist.
func (g *AllocationGuard) CheckEdit(categories []Category, id uuid.UUID, percentage float64) Result {
	if percentage < 0 || percentage > 100 {
		return Result{Reason: ReasonInvalid, Cause: ErrInvalidPercentage}
	}
	found := false
	var others int64
	for _, c := range categories {
		if c.ID == id {
			found = true
			continue
		}
		if c.IsActive {
			others += toHundredths(c.Percentage)
		}
	}
	if !found {
		return Result{Reason: ReasonInvalid, Cause: ErrCategoryNotFound}
	}
	return evaluate(others + toHundredths(percentage))
}

func evaluate(total int64) Result {
	res := Result{TotalPercentage: float64(total) / hundredthsPerPercent}
	switch {
	case total > fullAllocation:
		res.Reason = ReasonOverAllocated
	case total == fullAllocation:
		res.OK = true
		res.Balanced = true
		res.Reason = ReasonBalanced
	default:
		res.OK = true
		res.Reason = ReasonUnderAllocated
	}
	return res
}

func toHundredths(p float64) int64 {
	return int64(math.Round(p * hundredthsPerPercent))
}
