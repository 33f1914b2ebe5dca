package booking

import "time"

// Bill is the deterministic outcome of a billing computation: the final
// charge list and its total, in integer cents.
type Bill struct {
	Charges []Charge
	Total   Money
}

// RentAmount returns the room-rent line of the bill, or zero if absent.
func (b Bill) RentAmount() Money {
	for _, c := range b.Charges {
		if c.Kind == ChargeRoomRent {
			return c.Amount
		}
	}
	return NewMoney(0)
}

// NightsStayed is the ceiling of the elapsed time since check-in in whole
// days, floored at one night so a same-day checkout still bills one night.
func NightsStayed(checkIn, now time.Time) int {
	elapsed := now.Sub(NormalizeDate(checkIn))
	nights := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights
}

// ComputeFinalBill rewrites the room-rent line in place from the nights
// stayed and the flat nightly rate, inserting it first if no rent line
// exists, then totals every charge.
func ComputeFinalBill(charges []Charge, nights int, nightlyRate Money, now time.Time) Bill {
	rent := NewMoney(int64(nights) * nightlyRate.Cents())

	final := make([]Charge, 0, len(charges)+1)
	replaced := false
	for _, c := range charges {
		if c.Kind == ChargeRoomRent && !replaced {
			c.Amount = rent
			replaced = true
		}
		final = append(final, c)
	}
	if !replaced {
		final = append([]Charge{newRoomRentCharge(rent, now)}, final...)
	}

	total := NewMoney(0)
	for _, c := range final {
		total = total.Add(c.Amount)
	}

	return Bill{Charges: final, Total: total}
}
