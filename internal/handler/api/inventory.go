package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "staybook/internal/handler/dto/request"
	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/handler/middleware"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventoryCommands commands.InventoryCommands
	inventoryQueries  queries.InventoryQueries
}

func NewInventoryHandler(inventoryCommands commands.InventoryCommands, inventoryQueries queries.InventoryQueries) *InventoryHandler {
	return &InventoryHandler{
		inventoryCommands: inventoryCommands,
		inventoryQueries:  inventoryQueries,
	}
}

// @Summary Open inventory
// @Description Set sellable capacity for a room type over a date range
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.OpenInventoryRequest true "Capacity request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /inventory [put]
func (h *InventoryHandler) OpenInventory(c *gin.Context) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.OpenInventoryRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request format",
			"detail": bindErr.Error(),
		})
		return
	}

	from, to, err := req.Dates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dates must use YYYY-MM-DD format",
		})
		return
	}

	err = h.inventoryCommands.OpenInventory(c.Request.Context(), hotelID, req.RoomTypeID, from, to, req.Capacity)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid inventory parameters",
			})
		case errors.Is(err, commands.ErrCapacityConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Capacity cannot drop below current holds and reservations",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Availability
// @Description Per-day capacity, held, reserved and available counts for a range
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param room_type_id query string true "Room type ID"
// @Param from query string true "Range start (inclusive), YYYY-MM-DD"
// @Param to query string true "Range end (exclusive), YYYY-MM-DD"
// @Success 200 {array} resdto.InventoryDayResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /inventory [get]
func (h *InventoryHandler) GetAvailability(c *gin.Context) {
	hotelID, ok := middleware.GetHotelID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	roomTypeID, err := uuid.Parse(c.Query("room_type_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room type ID format",
		})
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dates must use YYYY-MM-DD format",
		})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dates must use YYYY-MM-DD format",
		})
		return
	}

	views, err := h.inventoryQueries.Availability(c.Request.Context(), hotelID, roomTypeID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Range start must be before range end",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response := make([]*resdto.InventoryDayResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromInventoryDayView(v)
	}
	c.JSON(http.StatusOK, response)
}
