package slot

import (
	"fmt"
	"time"
)

type ID string

func (id ID) String() string {
	return string(id)
}

type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{start: start, end: end}, nil
}

func (tr TimeRange) Start() time.Time {
	return tr.start
}

func (tr TimeRange) End() time.Time {
	return tr.end
}

func (tr TimeRange) Duration() time.Duration {
	return tr.end.Sub(tr.start)
}

// AgeRange is inclusive on both ends, in whole years.
type AgeRange struct {
	min int
	max int
}

func NewAgeRange(min, max int) (AgeRange, error) {
	if min < 0 || min > max {
		return AgeRange{}, ErrInvalidAgeRange
	}
	return AgeRange{min: min, max: max}, nil
}

func (ar AgeRange) Min() int { return ar.min }
func (ar AgeRange) Max() int { return ar.max }

func (ar AgeRange) Contains(age int) bool {
	return age >= ar.min && age <= ar.max
}

func (ar AgeRange) String() string {
	return fmt.Sprintf("%d-%d", ar.min, ar.max)
}

type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	if currency == "" {
		return Money{}, ErrMissingCurrency
	}
	return Money{cents: cents, currency: currency}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) Amount() float64 {
	return float64(m.cents) / 100.0
}

// Format is descriptive only, e.g. "4-a-side".
type Format string

func (f Format) String() string {
	return string(f)
}
