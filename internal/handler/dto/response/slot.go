package response

import (
	"time"

	"slot-booking/internal/usecase/queries"
)

type SlotResponse struct {
	ID         string    `json:"id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	MinAge     int       `json:"minAge"`
	MaxAge     int       `json:"maxAge"`
	Format     string    `json:"format"`
	Capacity   int       `json:"capacity"`
	Pending    int       `json:"pending"`
	Confirmed  int       `json:"confirmed"`
	Remaining  int       `json:"remaining"`
	IsFull     bool      `json:"isFull"`
	PriceCents int64     `json:"priceCents"`
	Currency   string    `json:"currency"`
}

func FromSlotView(v *queries.SlotView) *SlotResponse {
	return &SlotResponse{
		ID:         v.ID,
		Start:      v.Start,
		End:        v.End,
		MinAge:     v.MinAge,
		MaxAge:     v.MaxAge,
		Format:     v.Format,
		Capacity:   v.Capacity,
		Pending:    v.Pending,
		Confirmed:  v.Confirmed,
		Remaining:  v.Remaining,
		IsFull:     v.IsFull,
		PriceCents: v.PriceCents,
		Currency:   v.Currency,
	}
}
