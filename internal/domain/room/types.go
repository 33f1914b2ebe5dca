package room

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusCleaning    Status = "cleaning"
	StatusMaintenance Status = "maintenance"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance:
		return true
	default:
		return false
	}
}

// Bookable reports whether the status alone permits new bookings.
// Rooms under cleaning or maintenance are never offered, regardless
// of whether any booking conflicts.
func (s Status) Bookable() bool {
	return s == StatusAvailable
}
