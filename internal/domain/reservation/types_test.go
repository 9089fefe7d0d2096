//go:build unit

package reservation_test

import (
	"testing"

	"staybook/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    reservation.Status
		to      reservation.Status
		allowed bool
	}{
		{"pending to confirmed", reservation.StatusPendingPayment, reservation.StatusConfirmed, true},
		{"pending to cancelled", reservation.StatusPendingPayment, reservation.StatusCancelled, true},
		{"pending to expired", reservation.StatusPendingPayment, reservation.StatusExpired, true},
		{"pending to checked in", reservation.StatusPendingPayment, reservation.StatusCheckedIn, false},
		{"pending to no show", reservation.StatusPendingPayment, reservation.StatusNoShow, false},
		{"confirmed to checked in", reservation.StatusConfirmed, reservation.StatusCheckedIn, true},
		{"confirmed to cancelled", reservation.StatusConfirmed, reservation.StatusCancelled, true},
		{"confirmed to no show", reservation.StatusConfirmed, reservation.StatusNoShow, true},
		{"confirmed to expired", reservation.StatusConfirmed, reservation.StatusExpired, false},
		{"confirmed to pending", reservation.StatusConfirmed, reservation.StatusPendingPayment, false},
		{"checked in to checked out", reservation.StatusCheckedIn, reservation.StatusCheckedOut, true},
		{"checked in to no show", reservation.StatusCheckedIn, reservation.StatusNoShow, true},
		{"checked in to cancelled", reservation.StatusCheckedIn, reservation.StatusCancelled, false},
		{"checked out is terminal", reservation.StatusCheckedOut, reservation.StatusCheckedIn, false},
		{"cancelled is terminal", reservation.StatusCancelled, reservation.StatusConfirmed, false},
		{"expired is terminal", reservation.StatusExpired, reservation.StatusConfirmed, false},
		{"no show is terminal", reservation.StatusNoShow, reservation.StatusCheckedOut, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := []reservation.Status{
		reservation.StatusCheckedOut,
		reservation.StatusCancelled,
		reservation.StatusExpired,
		reservation.StatusNoShow,
	}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), "%s should be terminal", s)
	}

	active := []reservation.Status{
		reservation.StatusPendingPayment,
		reservation.StatusConfirmed,
		reservation.StatusCheckedIn,
	}
	for _, s := range active {
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, reservation.StatusPendingPayment.IsValid())
	assert.True(t, reservation.StatusNoShow.IsValid())
	assert.False(t, reservation.Status("BOOKED").IsValid())
	assert.False(t, reservation.Status("").IsValid())
}
