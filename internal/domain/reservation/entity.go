package reservation

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	id              uuid.UUID
	hotelID         uuid.UUID
	roomTypeID      uuid.UUID
	stay            StayRange
	status          Status
	holdExpiresAt   *time.Time
	paymentIntentID *string
	total           Money
	guest           GuestSnapshot
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReservation creates a reservation in PENDING_PAYMENT with an active hold.
// The caller has already secured ledger capacity for every night.
func NewReservation(
	hotelID, roomTypeID uuid.UUID,
	stay StayRange,
	total Money,
	guest GuestSnapshot,
	holdExpiresAt time.Time,
) *Reservation {
	expires := holdExpiresAt
	return &Reservation{
		id:            uuid.New(),
		hotelID:       hotelID,
		roomTypeID:    roomTypeID,
		stay:          stay,
		status:        StatusPendingPayment,
		holdExpiresAt: &expires,
		total:         total,
		guest:         guest,
	}
}

func Reconstruct(
	id, hotelID, roomTypeID uuid.UUID,
	stay StayRange,
	status Status,
	holdExpiresAt *time.Time,
	paymentIntentID *string,
	total Money,
	guest GuestSnapshot,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		hotelID:         hotelID,
		roomTypeID:      roomTypeID,
		stay:            stay,
		status:          status,
		holdExpiresAt:   holdExpiresAt,
		paymentIntentID: paymentIntentID,
		total:           total,
		guest:           guest,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// TransitionTo validates the move against the lifecycle table and applies it.
func (r *Reservation) TransitionTo(next Status) error {
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	return nil
}

// Confirm converts the hold into a durable reservation. The ledger transfer
// happens alongside in the same transaction.
func (r *Reservation) Confirm(paymentIntentID string) error {
	if err := r.TransitionTo(StatusConfirmed); err != nil {
		return err
	}
	r.paymentIntentID = &paymentIntentID
	r.holdExpiresAt = nil
	return nil
}

func (r *Reservation) IsPendingPayment() bool {
	return r.status == StatusPendingPayment
}

// HoldExpired reports whether the hold's TTL has lapsed. An expired hold is
// inert even while its ledger decrement is still outstanding.
func (r *Reservation) HoldExpired(now time.Time) bool {
	return r.holdExpiresAt != nil && now.After(*r.holdExpiresAt)
}

func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) HotelID() uuid.UUID        { return r.hotelID }
func (r *Reservation) RoomTypeID() uuid.UUID     { return r.roomTypeID }
func (r *Reservation) Stay() StayRange           { return r.stay }
func (r *Reservation) Status() Status            { return r.status }
func (r *Reservation) HoldExpiresAt() *time.Time { return r.holdExpiresAt }
func (r *Reservation) PaymentIntentID() *string  { return r.paymentIntentID }
func (r *Reservation) Total() Money              { return r.total }
func (r *Reservation) Guest() GuestSnapshot      { return r.guest }
func (r *Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }
