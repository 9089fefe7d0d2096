package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidStayRange = errors.New("check-in must be before check-out")
	ErrStayTooLong      = errors.New("stay exceeds maximum length")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter code")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrInvalidGuest     = errors.New("guest name and email are required")
)

const maxStayNights = 90

// StayRange is the half-open interval [checkIn, checkOut): the guest occupies
// every night from checkIn up to but not including checkOut.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	if !in.Before(out) {
		return StayRange{}, ErrInvalidStayRange
	}
	if int(out.Sub(in).Hours()/24) > maxStayNights {
		return StayRange{}, ErrStayTooLong
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

func (r StayRange) CheckIn() time.Time {
	return r.checkIn
}

func (r StayRange) CheckOut() time.Time {
	return r.checkOut
}

func (r StayRange) NightCount() int {
	return int(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// Nights enumerates each occupied calendar day, check-out day excluded.
func (r StayRange) Nights() []time.Time {
	nights := make([]time.Time, 0, r.NightCount())
	for d := r.checkIn; d.Before(r.checkOut); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

func (r StayRange) Contains(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(r.checkIn) && d.Before(r.checkOut)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Money struct {
	amountCents int64
	currency    string
}

func NewMoney(amountCents int64, currency string) (Money, error) {
	if amountCents < 0 {
		return Money{}, ErrNegativeAmount
	}
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if len(cur) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amountCents: amountCents, currency: cur}, nil
}

func (m Money) AmountCents() int64 {
	return m.amountCents
}

func (m Money) Currency() string {
	return m.currency
}

// GuestSnapshot is a denormalized copy of guest contact data taken at booking
// time; it does not follow later CRM edits.
type GuestSnapshot struct {
	name  string
	email string
}

func NewGuestSnapshot(name, email string) (GuestSnapshot, error) {
	n := strings.TrimSpace(name)
	e := strings.TrimSpace(email)
	if n == "" || e == "" {
		return GuestSnapshot{}, ErrInvalidGuest
	}
	return GuestSnapshot{name: n, email: e}, nil
}

func (g GuestSnapshot) Name() string {
	return g.name
}

func (g GuestSnapshot) Email() string {
	return g.email
}
