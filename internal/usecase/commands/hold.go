package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"staybook/internal/domain/reservation"
	reqdto "staybook/internal/handler/dto/request"
	"staybook/internal/infra"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/config"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrValidation            = errs.New("validation failed")
	ErrReservationNotFound   = errs.New("reservation not found")
	ErrInventoryUnavailable  = errs.New("inventory unavailable")
	ErrHoldExpired           = errs.New("hold expired")
	ErrInvalidTransition     = errs.New("invalid status transition")
	ErrIdempotencyConflict   = errs.New("idempotency key reused with different payload")
	ErrIdempotencyInProgress = errs.New("idempotency in progress")
	ErrCapacityConflict      = errs.New("capacity below current usage")
	ErrPersistenceFailure    = errs.New("persistence failure")
)

const createReservationEndpoint = "POST /api/reservations"

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest, hotelID, idempotencyKey uuid.UUID) (*CreateReservationResult, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
	booking            config.BookingConfig
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
	booking config.BookingConfig,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		clock:              clock,
		booking:            booking,
	}
}

// CreateReservation places a hold on every night of the stay and persists the
// reservation in PENDING_PAYMENT. The idempotency claim shares the booking
// transaction: a failed booking rolls the claim back, so a retry with the
// same key re-executes instead of being stuck behind a dead claim. A
// concurrent duplicate blocks on the claim insert until the winner commits,
// then replays the winner's stored result.
func (c *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	hotelID, idempotencyKey uuid.UUID,
) (*CreateReservationResult, error) {
	requestHash := calculateRequestHash(req)
	now := c.clock.Now()

	draft, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	entity := reservation.NewReservation(
		hotelID, req.RoomTypeID,
		draft.Stay, draft.Total, draft.Guest,
		now.Add(c.booking.HoldTTL),
	)

	var replayID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		replayID = uuid.Nil

		expiresAt := now.Add(c.booking.IdempotencyRetention)
		claimed, err := tx.Idempotency().TryInsert(ctx, hotelID, idempotencyKey, createReservationEndpoint, requestHash, expiresAt)
		if err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}
		if !claimed {
			id, err := resolveExistingClaim(ctx, tx, hotelID, idempotencyKey, requestHash)
			if err != nil {
				return err
			}
			replayID = id
			return nil
		}

		days, err := tx.Inventory().LockDays(ctx, hotelID, req.RoomTypeID, draft.Stay.Nights(), c.booking.DefaultCapacity)
		if err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}
		for _, day := range days {
			if day.Available() < 1 {
				return ErrInventoryUnavailable
			}
		}
		for _, night := range draft.Stay.Nights() {
			if err := tx.Inventory().AdjustHeld(ctx, hotelID, req.RoomTypeID, night, 1, c.booking.DefaultCapacity); err != nil {
				if infra.IsKind(err, infra.KindCheckViolated) {
					return ErrInventoryUnavailable
				}
				return errs.Mark(err, ErrPersistenceFailure)
			}
		}
		if err := tx.Reservations().Create(ctx, entity); err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}

		body, err := json.Marshal(map[string]any{
			"id":     entity.ID(),
			"status": entity.Status().String(),
		})
		if err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}
		if err := tx.Idempotency().MarkCompleted(ctx, hotelID, idempotencyKey, body, entity.ID()); err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if replayID != uuid.Nil {
		view, err := c.reservationQueries.GetByID(ctx, hotelID, replayID)
		if err != nil {
			return nil, errs.Mark(err, ErrPersistenceFailure)
		}
		return &CreateReservationResult{Reservation: view, IsReplayed: true}, nil
	}

	// Read-after-write: the view carries database-assigned timestamps.
	view, err := c.reservationQueries.GetByID(ctx, hotelID, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrPersistenceFailure)
	}
	return &CreateReservationResult{Reservation: view, IsReplayed: false}, nil
}

// resolveExistingClaim maps an already-claimed (hotel, key) pair to its stored
// outcome: the reservation id to replay, or a conflict/in-progress error.
func resolveExistingClaim(
	ctx context.Context,
	tx shared.Tx,
	hotelID, idempotencyKey uuid.UUID,
	requestHash string,
) (uuid.UUID, error) {
	existing, err := tx.Idempotency().Get(ctx, hotelID, idempotencyKey)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrPersistenceFailure)
	}
	if existing.RequestHash != requestHash {
		return uuid.Nil, ErrIdempotencyConflict
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultReservationID == nil {
			return uuid.Nil, errs.New("completed idempotency record missing reservation id")
		}
		return *existing.ResultReservationID, nil

	case shared.IdempotencyStatusProcessing:
		// A committed claim is always completed (MarkCompleted shares the
		// claiming transaction), so this only shows up mid-race. Retryable.
		return uuid.Nil, ErrIdempotencyInProgress

	default:
		return uuid.Nil, errs.New("invalid idempotency key status")
	}
}

func calculateRequestHash(req reqdto.CreateReservationRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
