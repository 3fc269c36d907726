package catalog

import (
	"sort"

	"slot-booking/internal/domain/slot"
	"slot-booking/internal/infra"
)

// SlotCatalog is populated once at activity setup and never mutated.
type SlotCatalog struct {
	byID  map[slot.ID]*slot.Slot
	order []slot.ID
}

func New(slots ...*slot.Slot) (*SlotCatalog, error) {
	c := &SlotCatalog{
		byID:  make(map[slot.ID]*slot.Slot, len(slots)),
		order: make([]slot.ID, 0, len(slots)),
	}
	for _, s := range slots {
		if s == nil {
			return nil, infra.NewError(infra.KindInvalidSeed, "nil slot in catalog seed")
		}
		if _, dup := c.byID[s.ID()]; dup {
			return nil, infra.NewError(infra.KindDuplicateKey, "duplicate slot id "+s.ID().String())
		}
		c.byID[s.ID()] = s
		c.order = append(c.order, s.ID())
	}
	sort.SliceStable(c.order, func(i, j int) bool {
		a, b := c.byID[c.order[i]], c.byID[c.order[j]]
		if !a.TimeRange().Start().Equal(b.TimeRange().Start()) {
			return a.TimeRange().Start().Before(b.TimeRange().Start())
		}
		return a.ID() < b.ID()
	})
	return c, nil
}

func (c *SlotCatalog) Get(id slot.ID) (*slot.Slot, error) {
	s, ok := c.byID[id]
	if !ok {
		return nil, infra.NewError(infra.KindNotFound, "slot "+id.String()+" not found")
	}
	return s, nil
}

func (c *SlotCatalog) List() []*slot.Slot {
	out := make([]*slot.Slot, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *SlotCatalog) Len() int {
	return len(c.order)
}
