package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/model"
	"github.com/iliyamo/train-station-booking/internal/repository"
)

type createTrainReq struct {
	Name          string `json:"name"`
	TypeID        uint64 `json:"type"`
	WagonCount    uint32 `json:"wagon_count"`
	WagonCapacity uint32 `json:"wagon_capacity"`
}

// ListTrainTypes handles GET /v1/train-types.  The rows are seeded at
// startup and referenced by id when creating trains.
func (h *CatalogHandler) ListTrainTypes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	types, err := h.Trains.ListTypes(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load train types failed"})
	}
	items := make([]echo.Map, 0, len(types))
	for _, t := range types {
		items = append(items, echo.Map{"id": t.ID, "name": t.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateTrain handles POST /v1/trains (ADMIN).  Both wagon dimensions
// must be at least 1; a train with zero seats could never run a
// bookable journey.
func (h *CatalogHandler) CreateTrain(c echo.Context) error {
	var req createTrainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.WagonCount < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "wagon_count must be at least 1"})
	}
	if req.WagonCapacity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "wagon_capacity must be at least 1"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Trains.GetTypeByID(ctx, req.TypeID); err != nil {
		if errors.Is(err, repository.ErrTrainTypeNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown train type"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	t := model.Train{
		Name:          req.Name,
		TypeID:        req.TypeID,
		WagonCount:    req.WagonCount,
		WagonCapacity: req.WagonCapacity,
	}
	if err := h.Trains.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create train failed"})
	}
	row, err := h.Trains.GetByID(ctx, t.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load train failed"})
	}
	return c.JSON(http.StatusCreated, row)
}

// ListTrains handles GET /v1/trains.
func (h *CatalogHandler) ListTrains(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	trains, err := h.Trains.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load trains failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": trains})
}
