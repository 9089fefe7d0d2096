package api

import (
	"errors"
	"net/http"

	reqdto "staybook/internal/handler/dto/request"
	"staybook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
	}
}

// @Summary Confirm payment
// @Description Provider webhook converting a pending hold into a confirmed reservation
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string true "Shared webhook secret"
// @Param request body reqdto.ConfirmPaymentRequest true "Payment confirmation payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/confirm [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var req reqdto.ConfirmPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request format",
			"detail": bindErr.Error(),
		})
		return
	}

	result, err := h.paymentCommands.ConfirmPayment(c.Request.Context(), req.HotelID, req.ReservationID, req.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrHoldExpired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Hold expired, please create a new reservation",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	if result.AlreadyProcessed {
		c.JSON(http.StatusOK, gin.H{
			"message": "Already processed",
			"status":  result.Status.String(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Payment confirmed",
		"reservationId": result.ReservationID,
		"status":        result.Status.String(),
	})
}
