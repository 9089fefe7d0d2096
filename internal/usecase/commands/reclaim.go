package commands

import (
	"context"
	"time"

	"staybook/internal/domain/reservation"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/config"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/shared"
)

const actorSystem = "system"

// ReclaimCommands is the background counterpart to lazy confirm-time expiry:
// it releases held units for abandoned holds so they do not inflate the
// ledger forever.
type ReclaimCommands interface {
	// ReclaimExpiredHolds expires one batch of stale PENDING_PAYMENT
	// reservations and returns how many it processed.
	ReclaimExpiredHolds(ctx context.Context) (int, error)
	// PurgeIdempotencyKeys drops stored responses past their retention.
	PurgeIdempotencyKeys(ctx context.Context) (int64, error)
}

type reclaimCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	booking config.BookingConfig
}

func NewReclaimCommands(uow shared.UnitOfWork, clock clock.Clock, booking config.BookingConfig) ReclaimCommands {
	return &reclaimCommandsImpl{uow: uow, clock: clock, booking: booking}
}

func (c *reclaimCommandsImpl) ReclaimExpiredHolds(ctx context.Context) (int, error) {
	var count int
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		count = 0
		now := c.clock.Now()
		expired, err := tx.Reservations().FindExpiredPending(ctx, now, c.booking.ReclaimBatch)
		if err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}
		for _, res := range expired {
			if err := expirePendingReservation(ctx, tx, res, now, actorSystem); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *reclaimCommandsImpl) PurgeIdempotencyKeys(ctx context.Context) (int64, error) {
	deleted, err := c.uow.Idempotency().DeleteExpired(ctx)
	if err != nil {
		return 0, errs.Mark(err, ErrPersistenceFailure)
	}
	return deleted, nil
}

// expirePendingReservation releases every held night and marks the
// reservation EXPIRED. Shared by lazy confirm-time expiry and the sweep.
func expirePendingReservation(
	ctx context.Context,
	tx shared.Tx,
	res *reservation.Reservation,
	now time.Time,
	actor string,
) error {
	prev := res.Status()
	if err := res.TransitionTo(reservation.StatusExpired); err != nil {
		return errs.Mark(err, ErrInvalidTransition)
	}
	for _, night := range res.Stay().Nights() {
		if err := tx.Inventory().AdjustHeld(ctx, res.HotelID(), res.RoomTypeID(), night, -1, 0); err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}
	}
	if err := tx.Reservations().Update(ctx, res); err != nil {
		return errs.Mark(err, ErrPersistenceFailure)
	}
	if err := tx.Transitions().Record(ctx, shared.TransitionRecord{
		ReservationID: res.ID(),
		HotelID:       res.HotelID(),
		From:          prev,
		To:            res.Status(),
		Actor:         actor,
		OccurredAt:    now,
	}); err != nil {
		return errs.Mark(err, ErrPersistenceFailure)
	}
	return nil
}
