package readstore

import (
	"context"
	"time"

	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
)

type InventoryReadStore struct {
	db db.DBTX
}

func NewInventoryReadStore(dbtx db.DBTX) *InventoryReadStore {
	return &InventoryReadStore{db: dbtx}
}

// FindRange returns one view per day in [from, to). generate_series fills the
// gaps so days the ledger never materialized still appear, with zero capacity.
func (s *InventoryReadStore) FindRange(ctx context.Context, hotelID, roomTypeID uuid.UUID, from, to time.Time) ([]*queries.InventoryDayView, error) {
	const query = `
		SELECT d.day::date,
		       COALESCE(i.capacity, 0),
		       COALESCE(i.held, 0),
		       COALESCE(i.reserved, 0)
		FROM generate_series($3::date, $4::date - INTERVAL '1 day', INTERVAL '1 day') AS d(day)
		LEFT JOIN inventory_days i
		       ON i.hotel_id = $1 AND i.room_type_id = $2 AND i.day = d.day::date
		ORDER BY d.day`

	rows, err := s.db.Query(ctx, query, hotelID, roomTypeID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query availability", err)
	}
	defer rows.Close()

	var views []*queries.InventoryDayView
	for rows.Next() {
		var v queries.InventoryDayView
		if err := rows.Scan(&v.Day, &v.Capacity, &v.Held, &v.Reserved); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability row", err)
		}
		v.Available = v.Capacity - v.Held - v.Reserved
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability rows", err)
	}
	return views, nil
}
