package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/handler"
	"github.com/iliyamo/train-station-booking/internal/middleware"
)

// RegisterJourneys registers the journey endpoints.  Listing and detail
// are open to any authenticated user; schedule management is admin only.
func RegisterJourneys(e *echo.Echo, h *handler.JourneyHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	read := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "CUSTOMER"),
	)
	if cache != nil {
		read.Use(cache)
	}
	read.GET("/journeys", h.ListJourneys)
	read.GET("/journeys/:id", h.GetJourney)

	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	admin.POST("/journeys", h.CreateJourney)
	admin.PUT("/journeys/:id", h.UpdateJourney)
	admin.DELETE("/journeys/:id", h.DeleteJourney)
}
