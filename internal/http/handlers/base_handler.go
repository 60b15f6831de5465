// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wayfare/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeTripError maps pipeline failures to status codes. Anything that is not
// a caller error or an empty candidate set is logged with full detail and
// surfaced as a generic message embedding the underlying error text.
func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNoCandidates):
		writeError(c, http.StatusNotFound, "No points of interest found for the specified cities")
	default:
		log.Error().Err(err).Msg("plan trip failed")
		writeError(c, http.StatusInternalServerError, "An error occurred while planning the trip: "+err.Error())
	}
}
