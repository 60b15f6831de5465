// README: Trip planning endpoint.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfare/internal/modules/trip"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(tripService *trip.Service) *TripHandler {
	return &TripHandler{trips: tripService}
}

// Plan handles POST /cities/plan-trip.
func (h *TripHandler) Plan(c *gin.Context) {
	var req trip.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Cities) == 0 {
		writeError(c, http.StatusBadRequest, "Cities parameter is required")
		return
	}
	if req.Days == 0 {
		writeError(c, http.StatusBadRequest, "Days parameter is required")
		return
	}

	result, err := h.trips.Plan(c.Request.Context(), req)
	if err != nil {
		writeTripError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, result)
}
