package request

import (
	"time"

	"github.com/google/uuid"
)

type OpenInventoryRequest struct {
	RoomTypeID uuid.UUID `json:"room_type_id" binding:"required"`
	From       string    `json:"from" binding:"required"`
	To         string    `json:"to" binding:"required"`
	Capacity   int       `json:"capacity" binding:"min=0"`
}

// Dates returns the parsed half-open range [from, to).
func (r OpenInventoryRequest) Dates() (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, r.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(dateLayout, r.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
