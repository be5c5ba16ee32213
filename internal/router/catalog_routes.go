package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/handler"
	"github.com/iliyamo/train-station-booking/internal/middleware"
)

// RegisterCatalog registers the station, train-type, train and route
// endpoints.  Any authenticated user can read the catalog; only admins
// can change it.  The cache middleware is applied to the read group and
// only ever caches the methods its config lists.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	read := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "CUSTOMER"),
	)
	if cache != nil {
		read.Use(cache)
	}
	read.GET("/stations", h.ListStations)
	read.GET("/train-types", h.ListTrainTypes)
	read.GET("/trains", h.ListTrains)
	read.GET("/routes", h.ListRoutes)

	write := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	write.POST("/stations", h.CreateStation)
	write.POST("/trains", h.CreateTrain)
	write.POST("/routes", h.CreateRoute)
}
