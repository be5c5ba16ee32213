package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/model"
	"github.com/iliyamo/train-station-booking/internal/repository"
)

type createRouteReq struct {
	SourceID      uint64 `json:"source"`
	DestinationID uint64 `json:"destination"`
}

// CreateRoute handles POST /v1/routes (ADMIN).  Both endpoints must be
// existing stations; the distance is derived from their coordinates on
// every read.
func (h *CatalogHandler) CreateRoute(c echo.Context) error {
	var req createRouteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.SourceID == 0 || req.DestinationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "source and destination are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Stations.GetByID(ctx, req.SourceID); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "source station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.Stations.GetByID(ctx, req.DestinationID); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	rt := model.Route{SourceID: req.SourceID, DestinationID: req.DestinationID}
	if err := h.Routes.Create(ctx, &rt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create route failed"})
	}
	row, err := h.Routes.GetByID(ctx, rt.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load route failed"})
	}
	return c.JSON(http.StatusCreated, row)
}

// ListRoutes handles GET /v1/routes.
func (h *CatalogHandler) ListRoutes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	routes, err := h.Routes.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load routes failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": routes})
}
