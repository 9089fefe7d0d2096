package repository

import (
	"context"

	"staybook/internal/infra/db"
	"staybook/internal/usecase/shared"
)

// TransitionRepository appends status-transition audit rows. Required for
// compliance and for reconstructing double-booking incidents after the fact.
type TransitionRepository struct {
	db db.DBTX
}

func NewTransitionRepository(dbtx db.DBTX) *TransitionRepository {
	return &TransitionRepository{db: dbtx}
}

func (r *TransitionRepository) Record(ctx context.Context, rec shared.TransitionRecord) error {
	const stmt = `
		INSERT INTO reservation_transitions (reservation_id, hotel_id, from_status, to_status, actor, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, stmt,
		rec.ReservationID,
		rec.HotelID,
		rec.From.String(),
		rec.To.String(),
		rec.Actor,
		rec.OccurredAt,
	)
	if err != nil {
		return wrapPgErr("failed to record status transition", err)
	}
	return nil
}
