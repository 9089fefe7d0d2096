package response

import (
	"time"

	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID               uuid.UUID  `json:"id"`
	HotelID          uuid.UUID  `json:"hotelId"`
	RoomTypeID       uuid.UUID  `json:"roomTypeId"`
	CheckIn          time.Time  `json:"checkIn"`
	CheckOut         time.Time  `json:"checkOut"`
	Status           string     `json:"status"`
	HoldExpiresAt    *time.Time `json:"holdExpiresAt,omitempty"`
	PaymentIntentID  *string    `json:"paymentIntentId,omitempty"`
	TotalAmountCents int64      `json:"totalAmountCents"`
	Currency         string     `json:"currency"`
	GuestName        string     `json:"guestName"`
	GuestEmail       string     `json:"guestEmail"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID               uuid.UUID `json:"id"`
	RoomTypeID       uuid.UUID `json:"roomTypeId"`
	CheckIn          time.Time `json:"checkIn"`
	CheckOut         time.Time `json:"checkOut"`
	Status           string    `json:"status"`
	TotalAmountCents int64     `json:"totalAmountCents"`
	GuestName        string    `json:"guestName"`
	CreatedAt        time.Time `json:"createdAt"`
}

type TransitionResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	Status        string    `json:"status"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	var resp ReservationListResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
