package repository

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/inventory"
	"staybook/internal/infra"
	"staybook/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation = "23505"
	pgErrCodeCheckViolation  = "23514"
)

// InventoryRepository owns the per (hotel, room type, day) counters. Every
// mutation is a single SQL statement, so adjustments on the same key serialize
// on the row itself; multi-night operations take explicit locks via LockDays.
type InventoryRepository struct {
	db db.DBTX
}

func NewInventoryRepository(dbtx db.DBTX) *InventoryRepository {
	return &InventoryRepository{db: dbtx}
}

// LockDays upserts missing rows (capacity defaulted) and takes FOR UPDATE
// locks in ascending day order. The fixed order keeps concurrent multi-night
// holds from deadlocking.
func (r *InventoryRepository) LockDays(ctx context.Context, hotelID, roomTypeID uuid.UUID, days []time.Time, defaultCapacity int) ([]inventory.Day, error) {
	const ensure = `
		INSERT INTO inventory_days (hotel_id, room_type_id, day, capacity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hotel_id, room_type_id, day) DO NOTHING`

	const lock = `
		SELECT hotel_id, room_type_id, day, capacity, held, reserved
		FROM inventory_days
		WHERE hotel_id = $1 AND room_type_id = $2 AND day = $3
		FOR UPDATE`

	sorted := make([]time.Time, len(days))
	copy(sorted, days)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Before(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	locked := make([]inventory.Day, 0, len(sorted))
	for _, day := range sorted {
		if _, err := r.db.Exec(ctx, ensure, hotelID, roomTypeID, day, defaultCapacity); err != nil {
			return nil, wrapPgErr("failed to ensure inventory day", err)
		}

		var d inventory.Day
		err := r.db.QueryRow(ctx, lock, hotelID, roomTypeID, day).
			Scan(&d.HotelID, &d.RoomTypeID, &d.Day, &d.Capacity, &d.Held, &d.Reserved)
		if err != nil {
			return nil, wrapPgErr("failed to lock inventory day", err)
		}
		locked = append(locked, d)
	}
	return locked, nil
}

func (r *InventoryRepository) AdjustHeld(ctx context.Context, hotelID, roomTypeID uuid.UUID, day time.Time, delta int, defaultCapacity int) error {
	const stmt = `
		INSERT INTO inventory_days (hotel_id, room_type_id, day, capacity, held)
		VALUES ($1, $2, $3, $4, GREATEST($5, 0))
		ON CONFLICT (hotel_id, room_type_id, day)
		DO UPDATE SET held = inventory_days.held + $5, updated_at = NOW()`

	if _, err := r.db.Exec(ctx, stmt, hotelID, roomTypeID, day, defaultCapacity, delta); err != nil {
		return wrapPgErr("failed to adjust held", err)
	}
	return nil
}

func (r *InventoryRepository) AdjustReserved(ctx context.Context, hotelID, roomTypeID uuid.UUID, day time.Time, delta int, defaultCapacity int) error {
	const stmt = `
		INSERT INTO inventory_days (hotel_id, room_type_id, day, capacity, reserved)
		VALUES ($1, $2, $3, $4, GREATEST($5, 0))
		ON CONFLICT (hotel_id, room_type_id, day)
		DO UPDATE SET reserved = inventory_days.reserved + $5, updated_at = NOW()`

	if _, err := r.db.Exec(ctx, stmt, hotelID, roomTypeID, day, defaultCapacity, delta); err != nil {
		return wrapPgErr("failed to adjust reserved", err)
	}
	return nil
}

// TransferHeldToReserved is deliberately one UPDATE: the decrement and the
// increment cannot be observed apart, and the CHECK constraints reject a
// transfer for which no hold unit exists.
func (r *InventoryRepository) TransferHeldToReserved(ctx context.Context, hotelID, roomTypeID uuid.UUID, day time.Time) error {
	const stmt = `
		UPDATE inventory_days
		SET held = held - 1, reserved = reserved + 1, updated_at = NOW()
		WHERE hotel_id = $1 AND room_type_id = $2 AND day = $3`

	tag, err := r.db.Exec(ctx, stmt, hotelID, roomTypeID, day)
	if err != nil {
		return wrapPgErr("failed to transfer held to reserved", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("inventory day not found for transfer", nil, infra.KindNotFound)
	}
	return nil
}

func (r *InventoryRepository) SetCapacity(ctx context.Context, hotelID, roomTypeID uuid.UUID, day time.Time, capacity int) error {
	const stmt = `
		INSERT INTO inventory_days (hotel_id, room_type_id, day, capacity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hotel_id, room_type_id, day)
		DO UPDATE SET capacity = $4, updated_at = NOW()`

	if _, err := r.db.Exec(ctx, stmt, hotelID, roomTypeID, day, capacity); err != nil {
		return wrapPgErr("failed to set capacity", err)
	}
	return nil
}

func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeCheckViolation:
			return infra.WrapRepoErr(msg, err, infra.KindCheckViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
