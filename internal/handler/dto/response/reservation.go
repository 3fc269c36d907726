package response

import (
	"time"

	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID               uuid.UUID `json:"id"`
	SlotID           string    `json:"slotId"`
	PlayerName       string    `json:"playerName"`
	PlayerAge        int       `json:"playerAge"`
	GuardianName     string    `json:"guardianName"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	PaymentDeadline  time.Time `json:"paymentDeadline"`
	UpdatedAt        time.Time `json:"updatedAt"`
	RemainingSeconds int64     `json:"remainingSeconds"`
	Overdue          bool      `json:"overdue"`
}

type ReservationListResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

type SweepResponse struct {
	Evicted []uuid.UUID `json:"evicted"`
	Count   int         `json:"count"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:               v.ID,
		SlotID:           v.SlotID,
		PlayerName:       v.PlayerName,
		PlayerAge:        v.PlayerAge,
		GuardianName:     v.GuardianName,
		Phone:            v.Phone,
		Email:            v.Email,
		Status:           v.Status,
		CreatedAt:        v.CreatedAt,
		PaymentDeadline:  v.PaymentDeadline,
		UpdatedAt:        v.UpdatedAt,
		RemainingSeconds: v.RemainingSeconds,
		Overdue:          v.Overdue,
	}
}

func FromReservationViews(views []*queries.ReservationView, next *queries.Cursor) *ReservationListResponse {
	resp := &ReservationListResponse{Items: make([]*ReservationResponse, 0, len(views))}
	for _, v := range views {
		resp.Items = append(resp.Items, FromReservationView(v))
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}

func FromSweepResult(r *commands.SweepResult) *SweepResponse {
	resp := &SweepResponse{Evicted: []uuid.UUID{}}
	if r != nil && r.Evicted != nil {
		resp.Evicted = r.Evicted
	}
	resp.Count = len(resp.Evicted)
	return resp
}
