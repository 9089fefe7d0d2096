package request

import "github.com/google/uuid"

type ConfirmPaymentRequest struct {
	HotelID         uuid.UUID `json:"hotel_id" binding:"required"`
	ReservationID   uuid.UUID `json:"reservation_id" binding:"required"`
	PaymentIntentID string    `json:"payment_intent_id" binding:"required"`
}
