// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfare/internal/http/handlers"
	"wayfare/internal/http/middleware"
	"wayfare/internal/modules/poi"
	"wayfare/internal/modules/trip"
)

func NewRouter(poiService *poi.Service, tripService *trip.Service) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	poiHandler := handlers.NewPOIHandler(poiService)
	r.GET("/cities", poiHandler.Cities)
	r.GET("/cities/top-points", poiHandler.TopPoints)
	r.GET("/cities/search", poiHandler.Search)

	tripHandler := handlers.NewTripHandler(tripService)
	r.POST("/cities/plan-trip", tripHandler.Plan)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
