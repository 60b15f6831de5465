// README: POI endpoints: city list, top-rated points, semantic search.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"wayfare/internal/modules/poi"
)

type POIHandler struct {
	pois *poi.Service
}

func NewPOIHandler(poiService *poi.Service) *POIHandler {
	return &POIHandler{pois: poiService}
}

// Cities handles GET /cities.
func (h *POIHandler) Cities(c *gin.Context) {
	cities, err := h.pois.Cities(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("list cities failed")
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if cities == nil {
		cities = []string{}
	}
	writeJSON(c, http.StatusOK, cities)
}

// TopPoints handles GET /cities/top-points?city=...
func (h *POIHandler) TopPoints(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		writeError(c, http.StatusBadRequest, "City parameter is required")
		return
	}

	points, err := h.pois.TopByCity(c.Request.Context(), city)
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("top points failed")
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if points == nil {
		points = []poi.PointOfInterest{}
	}
	writeJSON(c, http.StatusOK, gin.H{"context": points})
}

// Search handles GET /cities/search?city=...
// The query text doubles as the embedding input. Literal "%20" sequences are
// decoded to spaces first; clients occasionally double-encode the parameter.
func (h *POIHandler) Search(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		writeError(c, http.StatusBadRequest, "City parameter is required")
		return
	}
	city = strings.ReplaceAll(city, "%20", " ")

	hits, err := h.pois.Search(c.Request.Context(), city)
	if err != nil {
		log.Error().Err(err).Str("query", city).Msg("poi search failed")
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if hits == nil {
		hits = []poi.ScoredPointOfInterest{}
	}
	writeJSON(c, http.StatusOK, hits)
}
