package queries

import (
	"context"
	"time"

	"staybook/internal/infra"
	"staybook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

// Read models (DTO for read side)
type ReservationView struct {
	ID               uuid.UUID  `json:"id"`
	HotelID          uuid.UUID  `json:"hotel_id"`
	RoomTypeID       uuid.UUID  `json:"room_type_id"`
	CheckIn          time.Time  `json:"check_in"`
	CheckOut         time.Time  `json:"check_out"`
	Status           string     `json:"status"`
	HoldExpiresAt    *time.Time `json:"hold_expires_at,omitempty"`
	PaymentIntentID  *string    `json:"payment_intent_id,omitempty"`
	TotalAmountCents int64      `json:"total_amount_cents"`
	Currency         string     `json:"currency"`
	GuestName        string     `json:"guest_name"`
	GuestEmail       string     `json:"guest_email"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID               uuid.UUID `json:"id"`
	RoomTypeID       uuid.UUID `json:"room_type_id"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	Status           string    `json:"status"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	GuestName        string    `json:"guest_name"`
	CreatedAt        time.Time `json:"created_at"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, hotelID, id uuid.UUID) (*ReservationView, error)
	ListByHotel(ctx context.Context, hotelID uuid.UUID, status *string, limit int) ([]*ReservationListItem, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, hotelID, id uuid.UUID) (*ReservationView, error)
	FindByHotel(ctx context.Context, hotelID uuid.UUID, status *string, limit int32) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, hotelID, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, hotelID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByHotel(ctx context.Context, hotelID uuid.UUID, status *string, limit int) ([]*ReservationListItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return q.repo.FindByHotel(ctx, hotelID, status, int32(limit))
}
