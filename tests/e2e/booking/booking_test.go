//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	resdto "staybook/internal/handler/dto/response"
	"staybook/tests/common/httptest"
	"staybook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL   = "/api/reservations"
	inventoryURL      = "/api/inventory"
	confirmPaymentURL = "/api/payments/confirm"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) openInventory(token string, roomTypeID uuid.UUID, from, to string, capacity int) {
	t := s.T()
	body := map[string]any{
		"room_type_id": roomTypeID.String(),
		"from":         from,
		"to":           to,
		"capacity":     capacity,
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPut, inventoryURL, body, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code, "should open inventory: %s", w.Body.String())
}

func (s *BookingSuite) createReservation(token string, roomTypeID uuid.UUID, checkIn, checkOut string, key uuid.UUID) *httptest.ResponseRecorder {
	body := map[string]any{
		"room_type_id":       roomTypeID.String(),
		"check_in":           checkIn,
		"check_out":          checkOut,
		"guest":              map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"},
		"total_amount_cents": 25800,
		"currency":           "USD",
	}
	headers := map[string]string{"Idempotency-Key": key.String()}
	return httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, token, headers)
}

func (s *BookingSuite) confirmPayment(hotelID uuid.UUID, reservationID string, secret string) *httptest.ResponseRecorder {
	body := map[string]any{
		"hotel_id":          hotelID.String(),
		"reservation_id":    reservationID,
		"payment_intent_id": "pi_e2e_123",
	}
	headers := map[string]string{"X-Webhook-Secret": secret}
	return httptest.PerformRequest(s.T(), s.Router, http.MethodPost, confirmPaymentURL, body, "", headers)
}

func (s *BookingSuite) availability(token string, roomTypeID uuid.UUID, from, to string) []resdto.InventoryDayResponse {
	t := s.T()
	url := fmt.Sprintf("%s?room_type_id=%s&from=%s&to=%s", inventoryURL, roomTypeID, from, to)
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token, nil)

	var days []resdto.InventoryDayResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &days)
	return days
}

// =============================================================================
// TestBookingFlow - hold, confirm and release across the HTTP surface
// =============================================================================

func (s *BookingSuite) TestBookingFlow() {
	s.Run("Normal case: hold then confirm transfers inventory", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-15", 2)

		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-12", uuid.New())
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "PENDING_PAYMENT", created.Status)
		require.NotNil(t, created.HoldExpiresAt, "pending reservation carries its hold deadline")

		days := s.availability(token, roomTypeID, "2026-03-10", "2026-03-12")
		require.Len(t, days, 2)
		for _, d := range days {
			require.Equal(t, 1, d.Held)
			require.Equal(t, 1, d.Available)
		}

		w = s.confirmPayment(hotelID, created.ID.String(), s.Config.Auth.WebhookSecret)
		var confirmed map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &confirmed)
		require.Equal(t, "Payment confirmed", confirmed["message"])
		require.Equal(t, "CONFIRMED", confirmed["status"])

		days = s.availability(token, roomTypeID, "2026-03-10", "2026-03-12")
		for _, d := range days {
			require.Equal(t, 0, d.Held)
			require.Equal(t, 1, d.Reserved)
		}
	})

	s.Run("Normal case: duplicate webhook delivery is a no-op", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-12", 2)
		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-11", uuid.New())
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = s.confirmPayment(hotelID, created.ID.String(), s.Config.Auth.WebhookSecret)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		w = s.confirmPayment(hotelID, created.ID.String(), s.Config.Auth.WebhookSecret)
		var replay map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &replay)
		require.Equal(t, "Already processed", replay["message"])

		days := s.availability(token, roomTypeID, "2026-03-10", "2026-03-11")
		require.Equal(t, 1, days[0].Reserved, "second delivery must not transfer again")
	})

	s.Run("Error case: capacity exhaustion rejects the overflow request", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-11", 2)

		for range 2 {
			w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-11", uuid.New())
			httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)
		}

		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-11", uuid.New())
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "No availability")

		days := s.availability(token, roomTypeID, "2026-03-10", "2026-03-11")
		require.Equal(t, 2, days[0].Held)
		require.Equal(t, 0, days[0].Available)
	})

	s.Run("Error case: expired hold is refused and released on confirm", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-12", 2)
		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-12", uuid.New())
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		// Age the hold past its deadline
		_, err := s.DB.Exec(context.Background(),
			`UPDATE reservations SET hold_expires_at = NOW() - INTERVAL '1 minute' WHERE id = $1`, created.ID)
		require.NoError(t, err)

		w = s.confirmPayment(hotelID, created.ID.String(), s.Config.Auth.WebhookSecret)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Hold expired, please create a new reservation")

		var status string
		err = s.DB.QueryRow(context.Background(),
			`SELECT status FROM reservations WHERE id = $1`, created.ID).Scan(&status)
		require.NoError(t, err)
		require.Equal(t, "EXPIRED", status)

		days := s.availability(token, roomTypeID, "2026-03-10", "2026-03-12")
		for _, d := range days {
			require.Equal(t, 0, d.Held, "expired hold must return to the pool")
		}
	})

	s.Run("Error case: webhook without the shared secret is rejected", func() {
		t := s.T()
		w := s.confirmPayment(uuid.New(), uuid.New().String(), "wrong-secret")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid webhook secret")
	})
}

// =============================================================================
// TestIdempotentCreate - Idempotency-Key behavior over HTTP
// =============================================================================

func (s *BookingSuite) TestIdempotentCreate() {
	s.Run("Normal case: same key replays the original reservation", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)
		key := uuid.New()

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-12", 2)

		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-12", key)
		var first resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &first)

		w = s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-12", key)
		var second resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &second)
		require.Equal(t, first.ID, second.ID, "replay returns the same reservation")

		days := s.availability(token, roomTypeID, "2026-03-10", "2026-03-12")
		require.Equal(t, 1, days[0].Held, "replay must not hold twice")
	})

	s.Run("Error case: same key with a different payload conflicts", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)
		key := uuid.New()

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-14", 2)

		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-12", key)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)

		w = s.createReservation(token, roomTypeID, "2026-03-12", "2026-03-14", key)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "different payload")
	})

	s.Run("Error case: missing Idempotency-Key header", func() {
		t := s.T()
		hotelID := uuid.New()
		token := s.IssueTenantToken(hotelID)

		body := map[string]any{
			"room_type_id":       uuid.New().String(),
			"check_in":           "2026-03-10",
			"check_out":          "2026-03-12",
			"guest":              map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"},
			"total_amount_cents": 25800,
			"currency":           "USD",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body, token, nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Idempotency-Key header is required")
	})
}

// =============================================================================
// TestFrontDeskFlow - staff lifecycle transitions over HTTP
// =============================================================================

func (s *BookingSuite) TestFrontDeskFlow() {
	s.Run("Normal case: confirmed stay checks in and out", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-12", 2)
		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-12", uuid.New())
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = s.confirmPayment(hotelID, created.ID.String(), s.Config.Auth.WebhookSecret)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		base := reservationsURL + "/" + created.ID.String()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/check-in", nil, token, nil)
		var transition resdto.TransitionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &transition)
		require.Equal(t, "CHECKED_IN", transition.Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/check-out", nil, token, nil)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &transition)
		require.Equal(t, "CHECKED_OUT", transition.Status)
	})

	s.Run("Normal case: cancelling a confirmed stay releases reserved units", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-12", 2)
		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-12", uuid.New())
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = s.confirmPayment(hotelID, created.ID.String(), s.Config.Auth.WebhookSecret)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/cancel", nil, token, nil)
		var transition resdto.TransitionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &transition)
		require.Equal(t, "CANCELLED", transition.Status)

		days := s.availability(token, roomTypeID, "2026-03-10", "2026-03-12")
		for _, d := range days {
			require.Equal(t, 0, d.Reserved)
			require.Equal(t, 2, d.Available)
		}
	})

	s.Run("Error case: pending stay cannot check in", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-12", 2)
		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-12", uuid.New())
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ID.String()+"/check-in", nil, token, nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "does not allow this operation")
	})

	s.Run("Error case: another hotel's token cannot see the reservation", func() {
		t := s.T()
		hotelID := uuid.New()
		roomTypeID := uuid.New()
		token := s.IssueTenantToken(hotelID)

		s.openInventory(token, roomTypeID, "2026-03-10", "2026-03-12", 2)
		w := s.createReservation(token, roomTypeID, "2026-03-10", "2026-03-12", uuid.New())
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		otherToken := s.IssueTenantToken(uuid.New())
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			reservationsURL+"/"+created.ID.String(), nil, otherToken, nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Reservation not found")
	})
}
