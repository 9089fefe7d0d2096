package repository

import (
	"context"
	"time"

	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

// IdempotencyRepository persists the per-tenant (hotel_id, key) → response
// mapping. Records are write-once: TryInsert claims the key, MarkCompleted
// fills in the stored response, nothing ever mutates a completed record.
type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

// TryInsert is the atomic insert-if-absent. ON CONFLICT DO NOTHING makes the
// race between two concurrent callers resolve inside the database; the row
// count tells the caller whether it won the key. A conflict against an
// uncommitted claim blocks until that transaction commits or rolls back.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, hotelID, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	const stmt = `
		INSERT INTO idempotency_keys (hotel_id, key, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (hotel_id, key) DO NOTHING`

	tag, err := r.db.Exec(ctx, stmt, hotelID, key, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, wrapPgErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, hotelID, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	const query = `
		SELECT hotel_id, key, endpoint, request_hash, status, response_body, result_reservation_id, expires_at
		FROM idempotency_keys
		WHERE hotel_id = $1 AND key = $2`

	var (
		rec                 shared.IdempotencyRecord
		responseBody        []byte
		resultReservationID *uuid.UUID
	)
	err := r.db.QueryRow(ctx, query, hotelID, key).Scan(
		&rec.HotelID, &rec.Key, &rec.Endpoint, &rec.RequestHash,
		&rec.Status, &responseBody, &resultReservationID, &rec.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to get idempotency key", err)
	}
	rec.ResponseBody = responseBody
	rec.ResultReservationID = resultReservationID

	return &rec, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, hotelID, key uuid.UUID, responseBody []byte, resultReservationID uuid.UUID) error {
	const stmt = `
		UPDATE idempotency_keys
		SET status = 'completed', response_body = $3, result_reservation_id = $4
		WHERE hotel_id = $1 AND key = $2 AND status = 'processing'`

	tag, err := r.db.Exec(ctx, stmt, hotelID, key, responseBody, resultReservationID)
	if err != nil {
		return wrapPgErr("failed to mark idempotency key completed", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not in processing state", nil, infra.KindNotFound)
	}
	return nil
}

// DeleteExpired garbage-collects records past their retention window.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const stmt = `DELETE FROM idempotency_keys WHERE expires_at < NOW()`

	tag, err := r.db.Exec(ctx, stmt)
	if err != nil {
		return 0, wrapPgErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
