package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
)

type SeedSlot struct {
	ID         string    `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	MinAge     int       `json:"minAge"`
	MaxAge     int       `json:"maxAge"`
	Capacity   int       `json:"capacity"`
	PriceCents int64     `json:"priceCents"`
	Format     string    `json:"format"`
}

func (s SeedSlot) ToDomain(currency string) (*slot.Slot, error) {
	tr, err := slot.NewTimeRange(s.Start, s.End)
	if err != nil {
		return nil, err
	}
	ar, err := slot.NewAgeRange(s.MinAge, s.MaxAge)
	if err != nil {
		return nil, err
	}
	price, err := slot.NewMoney(s.PriceCents, currency)
	if err != nil {
		return nil, err
	}
	return slot.New(slot.ID(s.ID), tr, ar, s.Capacity, price, slot.Format(s.Format))
}

func FromSeed(seed []SeedSlot, currency string) (*SlotCatalog, error) {
	slots := make([]*slot.Slot, 0, len(seed))
	for i, ss := range seed {
		s, err := ss.ToDomain(currency)
		if err != nil {
			return nil, infra.WrapError(nil, infra.KindInvalidSeed, fmt.Sprintf("seed slot #%d (%q)", i, ss.ID), err)
		}
		slots = append(slots, s)
	}
	return New(slots...)
}

func LoadFile(path, currency string) (*SlotCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot seed %s: %w", path, err)
	}
	var seed []SeedSlot
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, infra.WrapError(nil, infra.KindInvalidSeed, "decode slot seed "+path, err)
	}
	return FromSeed(seed, currency)
}

// DefaultSeed is the children's football occurrence for the given day: one
// hour per age band, afternoons.
func DefaultSeed(day time.Time) []SeedSlot {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	at := func(h, m int) time.Time { return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	return []SeedSlot{
		{ID: "u7-1600", Start: at(16, 0), End: at(17, 0), MinAge: 6, MaxAge: 7, Capacity: 8, PriceCents: 1200, Format: "4-a-side"},
		{ID: "u9-1700", Start: at(17, 0), End: at(18, 0), MinAge: 8, MaxAge: 9, Capacity: 8, PriceCents: 1200, Format: "4-a-side"},
		{ID: "u11-1800", Start: at(18, 0), End: at(19, 0), MinAge: 10, MaxAge: 11, Capacity: 10, PriceCents: 1500, Format: "5-a-side"},
		{ID: "u13-1900", Start: at(19, 0), End: at(20, 30), MinAge: 12, MaxAge: 13, Capacity: 10, PriceCents: 1500, Format: "5-a-side"},
	}
}
