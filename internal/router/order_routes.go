package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/handler"
	"github.com/iliyamo/train-station-booking/internal/middleware"
)

// RegisterOrders registers the order endpoints.  Any authenticated user
// can place an order and list their own; order responses are never
// cached because availability must reflect every commit immediately.
func RegisterOrders(e *echo.Echo, h *handler.OrderHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "CUSTOMER"),
	)
	g.POST("/orders", h.CreateOrder)
	g.GET("/orders", h.ListOrders)
}
