package usecase

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RoomView struct {
	ID     uuid.UUID `json:"id"`
	Number int       `json:"number"`
	Status string    `json:"status"`
}

type ChargeView struct {
	Kind       string    `json:"kind"`
	Item       string    `json:"item"`
	PriceCents int64     `json:"price_cents"`
	ChargedAt  time.Time `json:"charged_at"`
}

type BookingView struct {
	ID               uuid.UUID    `json:"id"`
	RoomID           uuid.UUID    `json:"room_id"`
	RoomNumber       int          `json:"room_number"`
	GuestName        string       `json:"guest_name"`
	GuestEmail       string       `json:"guest_email"`
	CheckInDate      time.Time    `json:"check_in_date"`
	ExpectedCheckOut time.Time    `json:"expected_check_out"`
	CheckedOutAt     *time.Time   `json:"checked_out_at,omitempty"`
	Status           string       `json:"status"`
	Charges          []ChargeView `json:"charges"`
	TotalCents       int64        `json:"total_cents"`
	CreatedAt        time.Time    `json:"created_at"`
}

type ServiceCount struct {
	Item  string `json:"item"`
	Count int64  `json:"count"`
}

type ReportView struct {
	TotalRevenueCents int64          `json:"total_revenue_cents"`
	OccupancyRate     float64        `json:"occupancy_rate"`
	CompletedStays    int64          `json:"completed_stays"`
	MaintenanceRooms  int64          `json:"maintenance_rooms"`
	PopularServices   []ServiceCount `json:"popular_services"`
}

type AdminView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}
