package commands

import (
	"context"
	"time"

	"staybook/internal/infra"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxOpenRangeDays = 366

type InventoryCommands interface {
	// OpenInventory sets sellable capacity for every day in [from, to).
	// Lowering capacity below the current held+reserved usage is rejected.
	OpenInventory(ctx context.Context, hotelID, roomTypeID uuid.UUID, from, to time.Time, capacity int) error
}

type inventoryCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewInventoryCommands(uow shared.UnitOfWork) InventoryCommands {
	return &inventoryCommandsImpl{uow: uow}
}

func (c *inventoryCommandsImpl) OpenInventory(ctx context.Context, hotelID, roomTypeID uuid.UUID, from, to time.Time, capacity int) error {
	if capacity < 0 || !from.Before(to) {
		return ErrValidation
	}
	if int(to.Sub(from).Hours()/24) > maxOpenRangeDays {
		return ErrValidation
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
			if err := tx.Inventory().SetCapacity(ctx, hotelID, roomTypeID, day, capacity); err != nil {
				if infra.IsKind(err, infra.KindCheckViolated) {
					return ErrCapacityConflict
				}
				return errs.Mark(err, ErrPersistenceFailure)
			}
		}
		return nil
	})
}
