package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyGuestName  = errors.New("guest name cannot be empty")
	ErrEmptyGuestEmail = errors.New("guest email cannot be empty")
	ErrAlreadyComplete = errors.New("booking is already completed")
)

type Booking struct {
	id           uuid.UUID
	roomID       uuid.UUID
	guestName    string
	guestEmail   string
	period       StayPeriod
	status       Status
	accessKey    AccessKey
	charges      []Charge
	total        Money
	checkedOutAt *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewBooking creates a booking for the given room and stay. A stay whose
// first day has already arrived starts checked-in; a future stay starts
// upcoming. The charge list is seeded with a single-night rent placeholder
// that checkout rewrites with the true amount.
func NewBooking(
	roomID uuid.UUID,
	guestName, guestEmail string,
	period StayPeriod,
	nightlyRate Money,
	now time.Time,
) (*Booking, error) {
	if guestName == "" {
		return nil, ErrEmptyGuestName
	}
	if guestEmail == "" {
		return nil, ErrEmptyGuestEmail
	}

	key, err := NewAccessKey()
	if err != nil {
		return nil, err
	}

	status := StatusUpcoming
	if period.Includes(now) {
		status = StatusCheckedIn
	}

	return &Booking{
		id:         uuid.New(),
		roomID:     roomID,
		guestName:  guestName,
		guestEmail: guestEmail,
		period:     period,
		status:     status,
		accessKey:  key,
		charges:    []Charge{newRoomRentCharge(nightlyRate, now)},
	}, nil
}

func ReconstructBooking(
	id, roomID uuid.UUID,
	guestName, guestEmail string,
	period StayPeriod,
	status Status,
	accessKey AccessKey,
	charges []Charge,
	total Money,
	checkedOutAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		roomID:       roomID,
		guestName:    guestName,
		guestEmail:   guestEmail,
		period:       period,
		status:       status,
		accessKey:    accessKey,
		charges:      charges,
		total:        total,
		checkedOutAt: checkedOutAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// RegenerateKey replaces the access key after a store-level uniqueness
// violation. Only meaningful before the booking is persisted.
func (b *Booking) RegenerateKey() error {
	key, err := NewAccessKey()
	if err != nil {
		return err
	}
	b.accessKey = key
	return nil
}

func (b *Booking) AddCharge(c Charge) error {
	if b.status == StatusCompleted {
		return ErrAlreadyComplete
	}
	b.charges = append(b.charges, c)
	return nil
}

// CheckOut finalizes the stay: the rent line is rewritten from the actual
// nights stayed, the total is fixed, and the booking becomes completed.
// Completed bookings are immutable historical records.
func (b *Booking) CheckOut(nightlyRate Money, now time.Time) (Bill, error) {
	if b.status == StatusCompleted {
		return Bill{}, ErrAlreadyComplete
	}

	bill := ComputeFinalBill(b.charges, NightsStayed(b.period.CheckIn(), now), nightlyRate, now)
	b.charges = bill.Charges
	b.total = bill.Total
	b.status = StatusCompleted
	checkedOut := now
	b.checkedOutAt = &checkedOut
	return bill, nil
}

// AccruedBill totals the charges as they stand, without recomputing rent.
// Cancellation bills this way: it is not a stay-completion event.
func (b *Booking) AccruedBill() Bill {
	total := NewMoney(0)
	for _, c := range b.charges {
		total = total.Add(c.Amount)
	}
	return Bill{Charges: b.charges, Total: total}
}

// IsOverstaying reports whether an open booking has run past its expected
// check-out date.
func (b *Booking) IsOverstaying(now time.Time) bool {
	return b.status.IsOpen() && now.After(b.period.ExpectedCheckOut())
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) RoomID() uuid.UUID        { return b.roomID }
func (b *Booking) GuestName() string        { return b.guestName }
func (b *Booking) GuestEmail() string       { return b.guestEmail }
func (b *Booking) Period() StayPeriod       { return b.period }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) AccessKey() AccessKey     { return b.accessKey }
func (b *Booking) Charges() []Charge        { return b.charges }
func (b *Booking) Total() Money             { return b.total }
func (b *Booking) CheckedOutAt() *time.Time { return b.checkedOutAt }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }
