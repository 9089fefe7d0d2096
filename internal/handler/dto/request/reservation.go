package request

import (
	"time"

	"staybook/internal/domain/reservation"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type GuestPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type CreateReservationRequest struct {
	RoomTypeID       uuid.UUID    `json:"room_type_id" binding:"required"`
	CheckIn          string       `json:"check_in" binding:"required"`
	CheckOut         string       `json:"check_out" binding:"required"`
	Guest            GuestPayload `json:"guest" binding:"required"`
	TotalAmountCents int64        `json:"total_amount_cents" binding:"min=0"`
	Currency         string       `json:"currency" binding:"required,len=3"`
}

type ReservationDraft struct {
	Stay  reservation.StayRange
	Total reservation.Money
	Guest reservation.GuestSnapshot
}

// ToDomain parses and validates the payload into domain value objects.
func (r CreateReservationRequest) ToDomain() (*ReservationDraft, error) {
	checkIn, err := time.Parse(dateLayout, r.CheckIn)
	if err != nil {
		return nil, reservation.ErrInvalidStayRange
	}
	checkOut, err := time.Parse(dateLayout, r.CheckOut)
	if err != nil {
		return nil, reservation.ErrInvalidStayRange
	}

	stay, err := reservation.NewStayRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	total, err := reservation.NewMoney(r.TotalAmountCents, r.Currency)
	if err != nil {
		return nil, err
	}
	guest, err := reservation.NewGuestSnapshot(r.Guest.Name, r.Guest.Email)
	if err != nil {
		return nil, err
	}

	return &ReservationDraft{Stay: stay, Total: total, Guest: guest}, nil
}
