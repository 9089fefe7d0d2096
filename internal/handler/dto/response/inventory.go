package response

import (
	"time"

	"staybook/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type InventoryDayResponse struct {
	Day       time.Time `json:"day"`
	Capacity  int       `json:"capacity"`
	Held      int       `json:"held"`
	Reserved  int       `json:"reserved"`
	Available int       `json:"available"`
}

func FromInventoryDayView(v *queries.InventoryDayView) *InventoryDayResponse {
	var resp InventoryDayResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
