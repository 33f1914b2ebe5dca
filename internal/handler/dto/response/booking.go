package response

import (
	"time"

	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
)

type ChargeResponse struct {
	Kind       string    `json:"kind"`
	Item       string    `json:"item"`
	PriceCents int64     `json:"priceCents"`
	ChargedAt  time.Time `json:"chargedAt"`
}

type BookingResponse struct {
	ID               uuid.UUID        `json:"id"`
	RoomID           uuid.UUID        `json:"roomId"`
	RoomNumber       int              `json:"roomNumber"`
	GuestName        string           `json:"guestName"`
	GuestEmail       string           `json:"guestEmail"`
	CheckInDate      time.Time        `json:"checkInDate"`
	ExpectedCheckOut time.Time        `json:"expectedCheckOut"`
	CheckedOutAt     *time.Time       `json:"checkedOutAt,omitempty"`
	Status           string           `json:"status"`
	Charges          []ChargeResponse `json:"charges"`
	TotalCents       int64            `json:"totalCents"`
	CreatedAt        time.Time        `json:"createdAt"`
}

type CheckInResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	AccessKey string    `json:"accessKey,omitempty"`
	EmailSent bool      `json:"emailSent"`
}

type BookingStatusResponse struct {
	Booking       *BookingResponse `json:"booking"`
	IsOverstaying bool             `json:"isOverstaying"`
}

func FromBookingView(rm *usecase.BookingView) *BookingResponse {
	charges := make([]ChargeResponse, len(rm.Charges))
	for i, ch := range rm.Charges {
		charges[i] = ChargeResponse{
			Kind:       ch.Kind,
			Item:       ch.Item,
			PriceCents: ch.PriceCents,
			ChargedAt:  ch.ChargedAt,
		}
	}

	return &BookingResponse{
		ID:               rm.ID,
		RoomID:           rm.RoomID,
		RoomNumber:       rm.RoomNumber,
		GuestName:        rm.GuestName,
		GuestEmail:       rm.GuestEmail,
		CheckInDate:      rm.CheckInDate,
		ExpectedCheckOut: rm.ExpectedCheckOut,
		CheckedOutAt:     rm.CheckedOutAt,
		Status:           rm.Status,
		Charges:          charges,
		TotalCents:       rm.TotalCents,
		CreatedAt:        rm.CreatedAt,
	}
}

func FromBookingViews(rms []*usecase.BookingView) []*BookingResponse {
	resp := make([]*BookingResponse, len(rms))
	for i, rm := range rms {
		resp[i] = FromBookingView(rm)
	}
	return resp
}

// FromCheckInResult hands the key back in the body only when email delivery
// failed; a notified guest receives it by email alone.
func FromCheckInResult(result *usecase.CheckInResult) *CheckInResponse {
	resp := &CheckInResponse{
		BookingID: result.BookingID,
		EmailSent: result.EmailSent,
	}
	if !result.EmailSent {
		resp.AccessKey = result.AccessKey
	}
	return resp
}

func FromStatusResult(result *usecase.StatusResult) *BookingStatusResponse {
	return &BookingStatusResponse{
		Booking:       FromBookingView(result.Booking),
		IsOverstaying: result.IsOverstaying,
	}
}
