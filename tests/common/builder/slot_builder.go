//go:build unit || e2e

package builder

import (
	"time"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra/catalog"
)

type SlotBuilder struct {
	ID         string
	Start      time.Time
	Duration   time.Duration
	MinAge     int
	MaxAge     int
	Capacity   int
	PriceCents int64
	Currency   string
	Format     string
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		ID:         "u9-1700",
		Start:      time.Date(2026, 6, 6, 17, 0, 0, 0, time.UTC),
		Duration:   time.Hour,
		MinAge:     8,
		MaxAge:     9,
		Capacity:   8,
		PriceCents: 1200,
		Currency:   "EUR",
		Format:     "4-a-side",
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithID(id string) *SlotBuilder {
	b.ID = id
	return b
}

func (b *SlotBuilder) WithAges(minAge, maxAge int) *SlotBuilder {
	b.MinAge = minAge
	b.MaxAge = maxAge
	return b
}

func (b *SlotBuilder) WithCapacity(capacity int) *SlotBuilder {
	b.Capacity = capacity
	return b
}

func (b *SlotBuilder) WithStart(start time.Time) *SlotBuilder {
	b.Start = start
	return b
}

// Build methods
func (b *SlotBuilder) BuildSeed() catalog.SeedSlot {
	return catalog.SeedSlot{
		ID:         b.ID,
		Start:      b.Start,
		End:        b.Start.Add(b.Duration),
		MinAge:     b.MinAge,
		MaxAge:     b.MaxAge,
		Capacity:   b.Capacity,
		PriceCents: b.PriceCents,
		Format:     b.Format,
	}
}

func (b *SlotBuilder) BuildDomain() (*slot.Slot, error) {
	return b.BuildSeed().ToDomain(b.Currency)
}

func (b *SlotBuilder) MustBuild() *slot.Slot {
	s, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return s
}
