//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"staybook/internal/domain/inventory"
	"staybook/internal/domain/reservation"
	"staybook/internal/pkg/clock"
	"staybook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type confirmFixture struct {
	store      *fakeStore
	clock      *clock.FixedClock
	commands   commands.PaymentCommands
	hotelID    uuid.UUID
	roomTypeID uuid.UUID
}

func newConfirmFixture(t *testing.T) *confirmFixture {
	t.Helper()

	store := newFakeStore()
	fixedClock := clock.NewFixedClock(baseTime)

	return &confirmFixture{
		store:      store,
		clock:      fixedClock,
		commands:   commands.NewPaymentCommands(newFakeUoW(store), fixedClock),
		hotelID:    uuid.New(),
		roomTypeID: uuid.New(),
	}
}

// seedHeldReservation stores a pending reservation with its holds already
// placed, the state CreateReservation leaves behind.
func (f *confirmFixture) seedHeldReservation(t *testing.T, holdExpiresAt time.Time, nights int) *reservation.Reservation {
	t.Helper()

	stay, err := reservation.NewStayRange(stayDay(10), stayDay(10+nights))
	require.NoError(t, err)
	total, err := reservation.NewMoney(25800, "USD")
	require.NoError(t, err)
	guest, err := reservation.NewGuestSnapshot("Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	res := reservation.NewReservation(f.hotelID, f.roomTypeID, stay, total, guest, holdExpiresAt)
	f.store.seedReservation(res)

	f.store.mu.Lock()
	for _, night := range stay.Nights() {
		f.store.inventory[dayKey(f.hotelID, f.roomTypeID, night)] = &inventory.Day{
			HotelID: f.hotelID, RoomTypeID: f.roomTypeID, Day: night, Capacity: 10, Held: 1,
		}
	}
	f.store.mu.Unlock()

	return res
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("transfers every night and confirms", func(t *testing.T) {
		f := newConfirmFixture(t)
		res := f.seedHeldReservation(t, baseTime.Add(10*time.Minute), 2)

		result, err := f.commands.ConfirmPayment(ctx, f.hotelID, res.ID(), "pi_123")
		require.NoError(t, err)
		assert.False(t, result.AlreadyProcessed)
		assert.Equal(t, reservation.StatusConfirmed, result.Status)

		for d := 10; d < 12; d++ {
			day := f.store.inventoryDay(f.hotelID, f.roomTypeID, stayDay(d))
			assert.Equal(t, 0, day.Held, "night %d", d)
			assert.Equal(t, 1, day.Reserved, "night %d", d)
		}

		stored := f.store.reservationByID(res.ID())
		assert.Equal(t, reservation.StatusConfirmed, stored.Status())
		require.NotNil(t, stored.PaymentIntentID())
		assert.Equal(t, "pi_123", *stored.PaymentIntentID())
		assert.Nil(t, stored.HoldExpiresAt())
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newConfirmFixture(t)

		_, err := f.commands.ConfirmPayment(ctx, f.hotelID, uuid.New(), "pi_123")
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("wrong hotel cannot confirm", func(t *testing.T) {
		f := newConfirmFixture(t)
		res := f.seedHeldReservation(t, baseTime.Add(10*time.Minute), 1)

		_, err := f.commands.ConfirmPayment(ctx, uuid.New(), res.ID(), "pi_123")
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("duplicate confirm is an idempotent no-op", func(t *testing.T) {
		f := newConfirmFixture(t)
		res := f.seedHeldReservation(t, baseTime.Add(10*time.Minute), 2)

		_, err := f.commands.ConfirmPayment(ctx, f.hotelID, res.ID(), "pi_123")
		require.NoError(t, err)

		second, err := f.commands.ConfirmPayment(ctx, f.hotelID, res.ID(), "pi_123")
		require.NoError(t, err)
		assert.True(t, second.AlreadyProcessed)
		assert.Equal(t, reservation.StatusConfirmed, second.Status)

		// The ledger transferred exactly once
		for d := 10; d < 12; d++ {
			day := f.store.inventoryDay(f.hotelID, f.roomTypeID, stayDay(d))
			assert.Equal(t, 1, day.Reserved, "night %d", d)
			assert.Equal(t, 0, day.Held, "night %d", d)
		}
	})

	t.Run("expired hold cannot confirm and is released", func(t *testing.T) {
		f := newConfirmFixture(t)
		res := f.seedHeldReservation(t, baseTime.Add(-time.Second), 2)

		_, err := f.commands.ConfirmPayment(ctx, f.hotelID, res.ID(), "pi_123")
		assert.ErrorIs(t, err, commands.ErrHoldExpired)

		stored := f.store.reservationByID(res.ID())
		assert.Equal(t, reservation.StatusExpired, stored.Status())

		for d := 10; d < 12; d++ {
			day := f.store.inventoryDay(f.hotelID, f.roomTypeID, stayDay(d))
			assert.Equal(t, 0, day.Held, "night %d released", d)
			assert.Equal(t, 0, day.Reserved, "night %d", d)
		}
	})

	t.Run("cancelled reservation reports current state", func(t *testing.T) {
		f := newConfirmFixture(t)
		res := f.seedHeldReservation(t, baseTime.Add(10*time.Minute), 1)

		stored := f.store.reservationByID(res.ID())
		require.NoError(t, stored.TransitionTo(reservation.StatusCancelled))
		f.store.seedReservation(stored)

		result, err := f.commands.ConfirmPayment(ctx, f.hotelID, res.ID(), "pi_123")
		require.NoError(t, err)
		assert.True(t, result.AlreadyProcessed)
		assert.Equal(t, reservation.StatusCancelled, result.Status)
	})
}

// Two concurrent confirms of the same two-night reservation: both report
// CONFIRMED, the transfer happens once.
func TestConfirmPaymentConcurrent(t *testing.T) {
	f := newConfirmFixture(t)
	res := f.seedHeldReservation(t, baseTime.Add(10*time.Minute), 2)

	var wg sync.WaitGroup
	results := make([]*commands.ConfirmPaymentResult, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.commands.ConfirmPayment(context.Background(), f.hotelID, res.ID(), "pi_123")
		}(i)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, reservation.StatusConfirmed, results[i].Status)
	}

	for d := 10; d < 12; d++ {
		day := f.store.inventoryDay(f.hotelID, f.roomTypeID, stayDay(d))
		assert.Equal(t, 1, day.Reserved, "night %d transferred exactly once", d)
		assert.Equal(t, 0, day.Held, "night %d", d)
	}
}
