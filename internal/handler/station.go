package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/model"
	"github.com/iliyamo/train-station-booking/internal/repository"
)

// CatalogHandler groups the repositories behind the station, train and
// route endpoints.  The catalog is plain data management: admins create
// rows, everyone authenticated reads them, and the booking core only
// ever consumes them as lookup tables.
type CatalogHandler struct {
	Stations *repository.StationRepo
	Trains   *repository.TrainRepo
	Routes   *repository.RouteRepo
}

// NewCatalogHandler constructs a CatalogHandler.  All dependencies must
// be non-nil.
func NewCatalogHandler(stations *repository.StationRepo, trains *repository.TrainRepo, routes *repository.RouteRepo) *CatalogHandler {
	if stations == nil || trains == nil || routes == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Stations: stations, Trains: trains, Routes: routes}
}

type createStationReq struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type stationResp struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateStation handles POST /v1/stations (ADMIN).
func (h *CatalogHandler) CreateStation(c echo.Context) error {
	var req createStationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	s := model.Station{Name: req.Name, Latitude: req.Latitude, Longitude: req.Longitude}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Stations.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create station failed"})
	}
	return c.JSON(http.StatusCreated, stationResp{
		ID: s.ID, Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude,
	})
}

// ListStations handles GET /v1/stations.
func (h *CatalogHandler) ListStations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	stations, err := h.Stations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load stations failed"})
	}
	items := make([]stationResp, 0, len(stations))
	for _, s := range stations {
		items = append(items, stationResp{
			ID: s.ID, Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
