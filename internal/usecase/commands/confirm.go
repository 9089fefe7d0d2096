package commands

import (
	"context"

	"staybook/internal/domain/reservation"
	"staybook/internal/infra"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

const actorPaymentWebhook = "payment_webhook"

type ConfirmPaymentResult struct {
	ReservationID    uuid.UUID
	Status           reservation.Status
	AlreadyProcessed bool
}

type PaymentCommands interface {
	ConfirmPayment(ctx context.Context, hotelID, reservationID uuid.UUID, paymentIntentID string) (*ConfirmPaymentResult, error)
}

type paymentCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, clock clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{uow: uow, clock: clock}
}

// ConfirmPayment converts a pending hold into a confirmed reservation,
// exactly once. Concurrent confirms serialize on the reservation row lock:
// the loser re-reads CONFIRMED and takes the already-processed path, so the
// ledger transfer happens a single time.
//
// An expired hold is released here as well: the reservation flips to EXPIRED
// and its held units return to the pool before the call fails with
// ErrHoldExpired. The release commits even though the confirm is refused.
func (c *paymentCommandsImpl) ConfirmPayment(
	ctx context.Context,
	hotelID, reservationID uuid.UUID,
	paymentIntentID string,
) (*ConfirmPaymentResult, error) {
	var (
		result  *ConfirmPaymentResult
		expired bool
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().GetForUpdate(ctx, hotelID, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrPersistenceFailure)
		}

		if !res.IsPendingPayment() {
			// Duplicate delivery of the payment signal. Report the current
			// state unchanged instead of erroring.
			result = &ConfirmPaymentResult{
				ReservationID:    res.ID(),
				Status:           res.Status(),
				AlreadyProcessed: true,
			}
			return nil
		}

		now := c.clock.Now()
		if res.HoldExpired(now) {
			expired = true
			return expirePendingReservation(ctx, tx, res, now, actorSystem)
		}

		prev := res.Status()
		for _, night := range res.Stay().Nights() {
			if err := tx.Inventory().TransferHeldToReserved(ctx, hotelID, res.RoomTypeID(), night); err != nil {
				// A missing hold unit under a valid pending reservation is a
				// ledger inconsistency; surface it as retryable rather than
				// committing a partial transfer.
				return errs.Mark(err, ErrPersistenceFailure)
			}
		}
		if err := res.Confirm(paymentIntentID); err != nil {
			return errs.Mark(err, ErrInvalidTransition)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}
		if err := tx.Transitions().Record(ctx, shared.TransitionRecord{
			ReservationID: res.ID(),
			HotelID:       hotelID,
			From:          prev,
			To:            res.Status(),
			Actor:         actorPaymentWebhook,
			OccurredAt:    now,
		}); err != nil {
			return errs.Mark(err, ErrPersistenceFailure)
		}

		result = &ConfirmPaymentResult{
			ReservationID: res.ID(),
			Status:        res.Status(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrHoldExpired
	}
	return result, nil
}
