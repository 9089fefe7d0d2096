package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvariantViolated = errors.New("held + reserved exceeds capacity")

// Day is the per (hotel, room type, calendar day) ledger row. All counter
// mutations happen through atomic SQL; this type carries snapshots for
// availability decisions and reads.
type Day struct {
	HotelID    uuid.UUID
	RoomTypeID uuid.UUID
	Day        time.Time
	Capacity   int
	Held       int
	Reserved   int
}

func (d Day) Available() int {
	return d.Capacity - d.Held - d.Reserved
}

func (d Day) CheckInvariant() error {
	if d.Held < 0 || d.Reserved < 0 || d.Held+d.Reserved > d.Capacity {
		return ErrInvariantViolated
	}
	return nil
}
