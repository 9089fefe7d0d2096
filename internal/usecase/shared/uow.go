package shared

import (
	"context"
	"time"

	"staybook/internal/domain/inventory"
	"staybook/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Idempotency: Pool-backed access for maintenance (retention purge)
	// that needs no transaction. The claim handshake itself runs through
	// Tx so a failed operation rolls its claim back.
	Idempotency() IdempotencyRepository
}

type Tx interface {
	Reservations() ReservationRepository
	Inventory() InventoryRepository
	Idempotency() IdempotencyRepository
	Transitions() TransitionRepository
}

// InventoryRepository is the ledger. All counter mutations are atomic relative
// to other adjustments on the same (hotel, room type, day) key; LockDays
// serializes multi-night operations via row locks ordered by day.
type InventoryRepository interface {
	LockDays(ctx context.Context, hotelID, roomTypeID uuid.UUID, days []time.Time, defaultCapacity int) ([]inventory.Day, error)
	AdjustHeld(ctx context.Context, hotelID, roomTypeID uuid.UUID, day time.Time, delta int, defaultCapacity int) error
	AdjustReserved(ctx context.Context, hotelID, roomTypeID uuid.UUID, day time.Time, delta int, defaultCapacity int) error
	// TransferHeldToReserved moves one unit in a single UPDATE so a partial
	// failure between decrement and increment cannot exist.
	TransferHeldToReserved(ctx context.Context, hotelID, roomTypeID uuid.UUID, day time.Time) error
	SetCapacity(ctx context.Context, hotelID, roomTypeID uuid.UUID, day time.Time, capacity int) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	// GetForUpdate takes the reservation row lock; confirmation, cancellation
	// and front-desk transitions serialize on it.
	GetForUpdate(ctx context.Context, hotelID, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, res *reservation.Reservation) error
	// FindExpiredPending claims a batch of stale holds with SKIP LOCKED so
	// concurrent sweeps do not contend.
	FindExpiredPending(ctx context.Context, now time.Time, limit int) ([]*reservation.Reservation, error)
}

type TransitionRepository interface {
	Record(ctx context.Context, rec TransitionRecord) error
}

type TransitionRecord struct {
	ReservationID uuid.UUID
	HotelID       uuid.UUID
	From          reservation.Status
	To            reservation.Status
	Actor         string
	OccurredAt    time.Time
}

type IdempotencyRepository interface {
	// TryInsert is the atomic insert-if-absent. It reports whether this call
	// claimed the key; a false return means another request holds it and the
	// caller must consult Get instead of proceeding.
	TryInsert(ctx context.Context, hotelID, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, hotelID, key uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, hotelID, key uuid.UUID, responseBody []byte, resultReservationID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	HotelID             uuid.UUID
	Key                 uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              string
	ResponseBody        []byte
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}
