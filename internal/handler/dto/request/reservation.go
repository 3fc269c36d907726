package request

import (
	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/pkg/ptr"
)

type CreateReservationRequest struct {
	PlayerName   string `json:"playerName" binding:"required,max=100"`
	PlayerAge    *int   `json:"playerAge" binding:"required,min=0,max=120"`
	GuardianName string `json:"guardianName" binding:"required,max=100"`
	Phone        string `json:"phone" binding:"required,max=40"`
	Email        string `json:"email" binding:"required,max=254"`
}

func (r CreateReservationRequest) ToDomain() (reservation.Player, reservation.Contact, error) {
	// a missing age fails domain validation
	player, err := reservation.NewPlayer(r.PlayerName, ptr.Deref(r.PlayerAge, -1))
	if err != nil {
		return reservation.Player{}, reservation.Contact{}, err
	}
	contact, err := reservation.NewContact(r.GuardianName, r.Phone, r.Email)
	if err != nil {
		return reservation.Player{}, reservation.Contact{}, err
	}
	return player, contact, nil
}
