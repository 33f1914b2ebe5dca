//go:build unit

package builder

import (
	"time"

	reqdto "pearl-desk/internal/handler/dto/request"
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	RoomID           uuid.UUID
	RoomNumber       int
	GuestName        string
	GuestEmail       string
	CheckInDate      time.Time
	ExpectedCheckOut time.Time
	Status           string
	TotalCents       int64
}

func NewBookingBuilder() *BookingBuilder {
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:               uuid.New(),
		RoomID:           uuid.New(),
		RoomNumber:       42,
		GuestName:        "Ada Lovelace",
		GuestEmail:       "ada@example.com",
		CheckInDate:      checkIn,
		ExpectedCheckOut: checkIn.AddDate(0, 0, 3),
		Status:           "checked-in",
		TotalCents:       15000,
	}
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithGuest(name, email string) *BookingBuilder {
	b.GuestName = name
	b.GuestEmail = email
	return b
}

func (b *BookingBuilder) BuildCheckInDTO() reqdto.CheckInRequest {
	return reqdto.CheckInRequest{
		GuestName:        b.GuestName,
		GuestEmail:       b.GuestEmail,
		RoomNumber:       b.RoomNumber,
		CheckInDate:      b.CheckInDate.Format("2006-01-02"),
		ExpectedCheckOut: b.ExpectedCheckOut.Format("2006-01-02"),
	}
}

func (b *BookingBuilder) BuildView() *usecase.BookingView {
	return &usecase.BookingView{
		ID:               b.ID,
		RoomID:           b.RoomID,
		RoomNumber:       b.RoomNumber,
		GuestName:        b.GuestName,
		GuestEmail:       b.GuestEmail,
		CheckInDate:      b.CheckInDate,
		ExpectedCheckOut: b.ExpectedCheckOut,
		Status:           b.Status,
		Charges: []usecase.ChargeView{
			{Kind: "room_rent", Item: "Room Rent", PriceCents: 15000, ChargedAt: b.CheckInDate},
		},
		TotalCents: b.TotalCents,
		CreatedAt:  b.CheckInDate,
	}
}
