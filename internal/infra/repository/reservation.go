package repository

import (
	"context"
	"time"

	"staybook/internal/domain/reservation"
	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	const stmt = `
		INSERT INTO reservations (
			id, hotel_id, room_type_id, check_in, check_out, status,
			hold_expires_at, payment_intent_id, total_amount_cents, currency,
			guest_name, guest_email
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, stmt,
		res.ID(),
		res.HotelID(),
		res.RoomTypeID(),
		res.Stay().CheckIn(),
		res.Stay().CheckOut(),
		res.Status().String(),
		pgconv.TimePtrToPgtype(res.HoldExpiresAt()),
		pgconv.StringPtrToPgtype(res.PaymentIntentID()),
		res.Total().AmountCents(),
		res.Total().Currency(),
		res.Guest().Name(),
		res.Guest().Email(),
	)
	if err != nil {
		return wrapPgErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) GetForUpdate(ctx context.Context, hotelID, id uuid.UUID) (*reservation.Reservation, error) {
	const query = `
		SELECT id, hotel_id, room_type_id, check_in, check_out, status,
		       hold_expires_at, payment_intent_id, total_amount_cents, currency,
		       guest_name, guest_email, created_at, updated_at
		FROM reservations
		WHERE hotel_id = $1 AND id = $2
		FOR UPDATE`

	res, err := scanReservation(r.db.QueryRow(ctx, query, hotelID, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to get reservation for update", err)
	}
	return res, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	const stmt = `
		UPDATE reservations
		SET status = $3, hold_expires_at = $4, payment_intent_id = $5, updated_at = NOW()
		WHERE hotel_id = $1 AND id = $2`

	tag, err := r.db.Exec(ctx, stmt,
		res.HotelID(),
		res.ID(),
		res.Status().String(),
		pgconv.TimePtrToPgtype(res.HoldExpiresAt()),
		pgconv.StringPtrToPgtype(res.PaymentIntentID()),
	)
	if err != nil {
		return wrapPgErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found for update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]*reservation.Reservation, error) {
	const query = `
		SELECT id, hotel_id, room_type_id, check_in, check_out, status,
		       hold_expires_at, payment_intent_id, total_amount_cents, currency,
		       guest_name, guest_email, created_at, updated_at
		FROM reservations
		WHERE status = 'PENDING_PAYMENT' AND hold_expires_at < $1
		ORDER BY hold_expires_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, wrapPgErr("failed to find expired pending reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan expired reservation", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate expired reservations", err)
	}
	return result, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, hotelID, roomTypeID uuid.UUID
		checkIn, checkOut       time.Time
		status                  string
		holdExpiresAt           pgtype.Timestamptz
		paymentIntentID         pgtype.Text
		totalAmountCents        int64
		currency                string
		guestName, guestEmail   string
		createdAt, updatedAt    time.Time
	)

	err := row.Scan(
		&id, &hotelID, &roomTypeID, &checkIn, &checkOut, &status,
		&holdExpiresAt, &paymentIntentID, &totalAmountCents, &currency,
		&guestName, &guestEmail, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	stay, err := reservation.NewStayRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	total, err := reservation.NewMoney(totalAmountCents, currency)
	if err != nil {
		return nil, err
	}
	guest, err := reservation.NewGuestSnapshot(guestName, guestEmail)
	if err != nil {
		return nil, err
	}

	return reservation.Reconstruct(
		id, hotelID, roomTypeID,
		stay,
		reservation.Status(status),
		pgconv.TimePtrFromPgtype(holdExpiresAt),
		pgconv.StringPtrFromPgtype(paymentIntentID),
		total,
		guest,
		createdAt, updatedAt,
	), nil
}
