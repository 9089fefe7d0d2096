package commands

import (
	"context"
	"time"

	"staybook/internal/domain/reservation"
	"staybook/internal/infra"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

const actorFrontDesk = "front_desk"

// FrontDeskCommands covers staff-driven lifecycle moves. Each one serializes
// on the reservation row lock and records an audit transition.
type FrontDeskCommands interface {
	Cancel(ctx context.Context, hotelID, reservationID uuid.UUID) (reservation.Status, error)
	CheckIn(ctx context.Context, hotelID, reservationID uuid.UUID) (reservation.Status, error)
	CheckOut(ctx context.Context, hotelID, reservationID uuid.UUID) (reservation.Status, error)
	MarkNoShow(ctx context.Context, hotelID, reservationID uuid.UUID) (reservation.Status, error)
}

type frontDeskCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewFrontDeskCommands(uow shared.UnitOfWork, clock clock.Clock) FrontDeskCommands {
	return &frontDeskCommandsImpl{uow: uow, clock: clock}
}

// Cancel releases whatever the reservation currently occupies in the ledger:
// held units for a pending hold, reserved units for a confirmed booking.
func (c *frontDeskCommandsImpl) Cancel(ctx context.Context, hotelID, reservationID uuid.UUID) (reservation.Status, error) {
	return c.transition(ctx, hotelID, reservationID, reservation.StatusCancelled, true)
}

func (c *frontDeskCommandsImpl) CheckIn(ctx context.Context, hotelID, reservationID uuid.UUID) (reservation.Status, error) {
	return c.transition(ctx, hotelID, reservationID, reservation.StatusCheckedIn, false)
}

func (c *frontDeskCommandsImpl) CheckOut(ctx context.Context, hotelID, reservationID uuid.UUID) (reservation.Status, error) {
	return c.transition(ctx, hotelID, reservationID, reservation.StatusCheckedOut, false)
}

// MarkNoShow releases the reserved units: the room goes back on sale for the
// remaining nights.
func (c *frontDeskCommandsImpl) MarkNoShow(ctx context.Context, hotelID, reservationID uuid.UUID) (reservation.Status, error) {
	return c.transition(ctx, hotelID, reservationID, reservation.StatusNoShow, true)
}

func (c *frontDeskCommandsImpl) transition(
	ctx context.Context,
	hotelID, reservationID uuid.UUID,
	next reservation.Status,
	releaseInventory bool,
) (reservation.Status, error) {
	var final reservation.Status

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().GetForUpdate(ctx, hotelID, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrPersistenceFailure)
		}

		prev := res.Status()
		if err := res.TransitionTo(next); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}

		if releaseInventory {
			if err := c.release(ctx, tx, res, prev); err != nil {
				return err
			}
		}

		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}
		if err := tx.Transitions().Record(ctx, shared.TransitionRecord{
			ReservationID: res.ID(),
			HotelID:       hotelID,
			From:          prev,
			To:            res.Status(),
			Actor:         actorFrontDesk,
			OccurredAt:    c.clock.Now(),
		}); err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}

		final = res.Status()
		return nil
	})
	if err != nil {
		return "", err
	}
	return final, nil
}

func (c *frontDeskCommandsImpl) release(ctx context.Context, tx shared.Tx, res *reservation.Reservation, prev reservation.Status) error {
	var adjust func(context.Context, uuid.UUID, uuid.UUID, time.Time, int, int) error

	switch prev {
	case reservation.StatusPendingPayment:
		adjust = tx.Inventory().AdjustHeld
	case reservation.StatusConfirmed, reservation.StatusCheckedIn:
		adjust = tx.Inventory().AdjustReserved
	default:
		return nil
	}

	for _, night := range res.Stay().Nights() {
		if err := adjust(ctx, res.HotelID(), res.RoomTypeID(), night, -1, 0); err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}
	}
	return nil
}
