package request

import (
	"math"
	"strings"
	"time"

	"pearl-desk/internal/pkg/errs"
)

var ErrInvalidDate = errs.New("invalid date format")

// dateLayouts are accepted in order. Plain dates are the common case for
// front-desk clients; full timestamps are normalized to their calendar day.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

type CheckInRequest struct {
	GuestName        string `json:"guest_name" binding:"required"`
	GuestEmail       string `json:"guest_email" binding:"required,email"`
	RoomNumber       int    `json:"room_number" binding:"required,min=1"`
	CheckInDate      string `json:"check_in_date" binding:"required"`
	ExpectedCheckOut string `json:"expected_check_out" binding:"required"`
}

func (r CheckInRequest) GetGuestName() string {
	return strings.TrimSpace(r.GuestName)
}

type CheckOutRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
}

type AddChargeRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
	Item      string `json:"item" binding:"required"`
	// gte, not required: a complimentary zero-price item is a valid charge.
	Price float64 `json:"price" binding:"gte=0"`
}

// PriceCents converts the dollar amount clients send into integer cents.
func (r AddChargeRequest) PriceCents() int64 {
	return int64(math.Round(r.Price * 100))
}
