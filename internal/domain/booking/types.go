package booking

type Status string

// Canonical booking states. A booking is created upcoming (or checked-in
// when the stay already includes today), and completes exactly once at
// checkout. Cancellation removes the record instead of storing a state.
const (
	StatusUpcoming  Status = "upcoming"
	StatusCheckedIn Status = "checked-in"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusCheckedIn, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsOpen() bool {
	return s == StatusUpcoming || s == StatusCheckedIn
}

type ChargeKind string

// The room-rent line is identified by kind, not by its display label.
const (
	ChargeRoomRent ChargeKind = "room_rent"
	ChargeService  ChargeKind = "service"
)

func (k ChargeKind) String() string {
	return string(k)
}

func (k ChargeKind) IsValid() bool {
	switch k {
	case ChargeRoomRent, ChargeService:
		return true
	default:
		return false
	}
}
