package queries

import (
	"context"
	"time"

	"staybook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidDateRange = errs.New("invalid date range")

// InventoryDayView reports the ledger counters for one day. Days the ledger
// has no row for are reported with zero counters and zero capacity.
type InventoryDayView struct {
	Day       time.Time `json:"day"`
	Capacity  int       `json:"capacity"`
	Held      int       `json:"held"`
	Reserved  int       `json:"reserved"`
	Available int       `json:"available"`
}

type InventoryQueries interface {
	Availability(ctx context.Context, hotelID, roomTypeID uuid.UUID, from, to time.Time) ([]*InventoryDayView, error)
}

type InventoryViewRepo interface {
	FindRange(ctx context.Context, hotelID, roomTypeID uuid.UUID, from, to time.Time) ([]*InventoryDayView, error)
}

type inventoryQueriesImpl struct {
	repo InventoryViewRepo
}

func NewInventoryQueries(repo InventoryViewRepo) InventoryQueries {
	return &inventoryQueriesImpl{repo: repo}
}

func (q *inventoryQueriesImpl) Availability(ctx context.Context, hotelID, roomTypeID uuid.UUID, from, to time.Time) ([]*InventoryDayView, error) {
	if !from.Before(to) {
		return nil, ErrInvalidDateRange
	}
	return q.repo.FindRange(ctx, hotelID, roomTypeID, from, to)
}
