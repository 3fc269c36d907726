//go:build unit || e2e

package builder

import (
	"time"

	"slot-booking/internal/domain/reservation"
	reqdto "slot-booking/internal/handler/dto/request"
	"slot-booking/internal/pkg/ptr"
	"slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	Slot         *SlotBuilder
	PlayerName   string
	PlayerAge    int
	GuardianName string
	Phone        string
	Email        string
	Now          time.Time
	Hold         time.Duration
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		Slot:         NewSlotBuilder(),
		PlayerName:   "Leo Martin",
		PlayerAge:    9,
		GuardianName: "Ana Martin",
		Phone:        "+34 600 111 222",
		Email:        "ana.martin@example.com",
		Now:          time.Date(2026, 6, 6, 10, 0, 0, 0, time.UTC),
		Hold:         20 * time.Minute,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithPlayer(name string, age int) *ReservationBuilder {
	b.PlayerName = name
	b.PlayerAge = age
	return b
}

func (b *ReservationBuilder) WithContact(guardian, phone, email string) *ReservationBuilder {
	b.GuardianName = guardian
	b.Phone = phone
	b.Email = email
	return b
}

func (b *ReservationBuilder) WithNow(now time.Time) *ReservationBuilder {
	b.Now = now
	return b
}

// Build methods
func (b *ReservationBuilder) BuildPlayer() (reservation.Player, error) {
	return reservation.NewPlayer(b.PlayerName, b.PlayerAge)
}

func (b *ReservationBuilder) BuildContact() (reservation.Contact, error) {
	return reservation.NewContact(b.GuardianName, b.Phone, b.Email)
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	s, err := b.Slot.BuildDomain()
	if err != nil {
		return nil, err
	}
	player, err := b.BuildPlayer()
	if err != nil {
		return nil, err
	}
	contact, err := b.BuildContact()
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(s, player, contact, b.Now, b.Hold)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		PlayerName:   b.PlayerName,
		PlayerAge:    ptr.Of(b.PlayerAge),
		GuardianName: b.GuardianName,
		Phone:        b.Phone,
		Email:        b.Email,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:               uuid.New(),
		SlotID:           b.Slot.ID,
		PlayerName:       b.PlayerName,
		PlayerAge:        b.PlayerAge,
		GuardianName:     b.GuardianName,
		Phone:            b.Phone,
		Email:            b.Email,
		Status:           reservation.StatusPending.String(),
		CreatedAt:        b.Now,
		PaymentDeadline:  b.Now.Add(b.Hold),
		UpdatedAt:        b.Now,
		RemainingSeconds: int64(b.Hold / time.Second),
	}
}
