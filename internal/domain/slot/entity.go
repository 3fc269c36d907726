package slot

import (
	"errors"
	"strings"
)

var (
	ErrEmptyID          = errors.New("slot id is required")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
	ErrInvalidAgeRange  = errors.New("age range must satisfy 0 <= min <= max")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrMissingCurrency  = errors.New("currency is required")
)

// Slot is immutable once published.
type Slot struct {
	id        ID
	timeRange TimeRange
	ageRange  AgeRange
	capacity  int
	price     Money
	format    Format
}

func New(id ID, timeRange TimeRange, ageRange AgeRange, capacity int, price Money, format Format) (*Slot, error) {
	if strings.TrimSpace(id.String()) == "" {
		return nil, ErrEmptyID
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !timeRange.start.Before(timeRange.end) {
		return nil, ErrInvalidTimeRange
	}
	if ageRange.min < 0 || ageRange.min > ageRange.max {
		return nil, ErrInvalidAgeRange
	}
	if price.cents < 0 {
		return nil, ErrNegativePrice
	}

	return &Slot{
		id:        id,
		timeRange: timeRange,
		ageRange:  ageRange,
		capacity:  capacity,
		price:     price,
		format:    format,
	}, nil
}

func (s *Slot) ID() ID               { return s.id }
func (s *Slot) TimeRange() TimeRange { return s.timeRange }
func (s *Slot) AgeRange() AgeRange   { return s.ageRange }
func (s *Slot) Capacity() int        { return s.capacity }
func (s *Slot) Price() Money         { return s.price }
func (s *Slot) Format() Format       { return s.format }

func (s *Slot) Admits(age int) bool {
	return s.ageRange.Contains(age)
}
