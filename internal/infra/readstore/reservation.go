package readstore

import (
	"context"

	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ReservationReadStore serves the query side without taking locks.
type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, hotelID, id uuid.UUID) (*queries.ReservationView, error) {
	const query = `
		SELECT id, hotel_id, room_type_id, check_in, check_out, status,
		       hold_expires_at, payment_intent_id, total_amount_cents, currency,
		       guest_name, guest_email, created_at, updated_at
		FROM reservations
		WHERE hotel_id = $1 AND id = $2`

	var (
		view            queries.ReservationView
		holdExpiresAt   pgtype.Timestamptz
		paymentIntentID pgtype.Text
	)
	err := s.db.QueryRow(ctx, query, hotelID, id).Scan(
		&view.ID, &view.HotelID, &view.RoomTypeID, &view.CheckIn, &view.CheckOut, &view.Status,
		&holdExpiresAt, &paymentIntentID, &view.TotalAmountCents, &view.Currency,
		&view.GuestName, &view.GuestEmail, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	view.HoldExpiresAt = pgconv.TimePtrFromPgtype(holdExpiresAt)
	view.PaymentIntentID = pgconv.StringPtrFromPgtype(paymentIntentID)

	return &view, nil
}

func (s *ReservationReadStore) FindByHotel(ctx context.Context, hotelID uuid.UUID, status *string, limit int32) ([]*queries.ReservationListItem, error) {
	const query = `
		SELECT id, room_type_id, check_in, check_out, status, total_amount_cents, guest_name, created_at
		FROM reservations
		WHERE hotel_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := s.db.Query(ctx, query, hotelID, pgconv.StringPtrToPgtype(status), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var item queries.ReservationListItem
		err := rows.Scan(
			&item.ID, &item.RoomTypeID, &item.CheckIn, &item.CheckOut,
			&item.Status, &item.TotalAmountCents, &item.GuestName, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return items, nil
}
