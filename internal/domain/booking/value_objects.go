package booking

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStayPeriod = errors.New("check-in date must be before expected check-out date")
	ErrInvalidCharge     = errors.New("charge requires an item name and a non-negative price")
)

// StayPeriod is the half-open interval [CheckIn, ExpectedCheckOut) of a stay.
// Both bounds are normalized to UTC midnight; the same normalization is applied
// everywhere a period is compared, so the availability query and the check-in
// re-validation can never disagree on a boundary.
type StayPeriod struct {
	checkIn          time.Time
	expectedCheckOut time.Time
}

func NewStayPeriod(checkIn, expectedCheckOut time.Time) (StayPeriod, error) {
	start := NormalizeDate(checkIn)
	end := NormalizeDate(expectedCheckOut)
	if !start.Before(end) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}

	return StayPeriod{
		checkIn:          start,
		expectedCheckOut: end,
	}, nil
}

// NormalizeDate truncates an instant to UTC midnight of its calendar day.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (p StayPeriod) CheckIn() time.Time          { return p.checkIn }
func (p StayPeriod) ExpectedCheckOut() time.Time { return p.expectedCheckOut }

// Overlaps implements the half-open interval test: touching boundaries do not
// conflict, so back-to-back stays on the same day are permitted.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.expectedCheckOut) && p.expectedCheckOut.After(other.checkIn)
}

// Includes reports whether the given instant falls inside the stay.
func (p StayPeriod) Includes(now time.Time) bool {
	day := NormalizeDate(now)
	return !day.Before(p.checkIn) && day.Before(p.expectedCheckOut)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

// String formats the amount in dollars for display, e.g. "475.00".
func (m Money) String() string {
	sign := ""
	cents := m.cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

type Charge struct {
	Kind      ChargeKind
	Item      string
	Amount    Money
	ChargedAt time.Time
}

func NewServiceCharge(item string, amount Money, chargedAt time.Time) (Charge, error) {
	if item == "" || amount.IsNegative() {
		return Charge{}, ErrInvalidCharge
	}
	return Charge{
		Kind:      ChargeService,
		Item:      item,
		Amount:    amount,
		ChargedAt: chargedAt,
	}, nil
}

// RoomRentItem is the display label of the rent line; billing logic keys on
// ChargeRoomRent, never on this string.
const RoomRentItem = "Room Rent"

func newRoomRentCharge(amount Money, chargedAt time.Time) Charge {
	return Charge{
		Kind:      ChargeRoomRent,
		Item:      RoomRentItem,
		Amount:    amount,
		ChargedAt: chargedAt,
	}
}

// AccessKey is the guest-facing credential for one booking: 16 random bytes,
// hex-encoded. Collisions are negligible but the store still enforces
// uniqueness.
type AccessKey string

const accessKeyBytes = 16

func NewAccessKey() (AccessKey, error) {
	buf := make([]byte, accessKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return AccessKey(hex.EncodeToString(buf)), nil
}

func (k AccessKey) String() string {
	return string(k)
}

func (k AccessKey) IsZero() bool {
	return k == ""
}
