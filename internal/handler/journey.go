package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/model"
	"github.com/iliyamo/train-station-booking/internal/repository"
)

// JourneyHandler serves the journey read model (listing with
// availability, detail with taken places) and the admin-only schedule
// management endpoints.
type JourneyHandler struct {
	Journeys *repository.JourneyRepo
	Trains   *repository.TrainRepo
	Routes   *repository.RouteRepo
}

// NewJourneyHandler constructs a JourneyHandler.  All dependencies must
// be non-nil.
func NewJourneyHandler(journeys *repository.JourneyRepo, trains *repository.TrainRepo, routes *repository.RouteRepo) *JourneyHandler {
	if journeys == nil || trains == nil || routes == nil {
		panic("nil repository passed to NewJourneyHandler")
	}
	return &JourneyHandler{Journeys: journeys, Trains: trains, Routes: routes}
}

type journeyReq struct {
	TrainID       uint64    `json:"train"`
	RouteID       uint64    `json:"route"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// parseJourneyFilter reads the optional query parameters of the listing
// endpoint: date (calendar date of departure, YYYY-MM-DD) and
// source/destination station ids.  Station filtering matches the
// route's actual endpoints and only applies when both ids are present.
func parseJourneyFilter(dateStr, sourceStr, destStr string) (repository.JourneyFilter, error) {
	var f repository.JourneyFilter
	if dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return f, errors.New("date must be formatted as YYYY-MM-DD")
		}
		f.Date = &d
	}
	if sourceStr != "" {
		n, err := strconv.ParseUint(sourceStr, 10, 64)
		if err != nil || n == 0 {
			return f, errors.New("source must be a station id")
		}
		f.SourceID = n
	}
	if destStr != "" {
		n, err := strconv.ParseUint(destStr, 10, 64)
		if err != nil || n == 0 {
			return f, errors.New("destination must be a station id")
		}
		f.DestinationID = n
	}
	return f, nil
}

// ListJourneys handles GET /v1/journeys.  Every row carries
// tickets_available computed from committed tickets only.
func (h *JourneyHandler) ListJourneys(c echo.Context) error {
	f, err := parseJourneyFilter(
		c.QueryParam("date"),
		c.QueryParam("source"),
		c.QueryParam("destination"),
	)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	rows, err := h.Journeys.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load journeys failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows})
}

// GetJourney handles GET /v1/journeys/:id.
func (h *JourneyHandler) GetJourney(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid journey id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	det, err := h.Journeys.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJourneyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "journey not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load journey failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": det})
}

// resolveJourneyRefs validates the train and route references of a
// create/update request.  It returns a non-nil echo error response when
// a reference is bad.
func (h *JourneyHandler) resolveJourneyRefs(ctx context.Context, c echo.Context, req journeyReq) error {
	if _, err := h.Trains.GetByID(ctx, req.TrainID); err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown train"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.Routes.GetByID(ctx, req.RouteID); err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown route"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return nil
}

// CreateJourney handles POST /v1/journeys (ADMIN).  The schedule window
// is validated: a journey must arrive strictly after it departs.
func (h *JourneyHandler) CreateJourney(c echo.Context) error {
	var req journeyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.TrainID == 0 || req.RouteID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "train and route are required"})
	}
	j := model.Journey{
		TrainID:       req.TrainID,
		RouteID:       req.RouteID,
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
	}
	if err := j.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if resp := h.resolveJourneyRefs(ctx, c, req); resp != nil {
		return resp
	}
	if err := h.Journeys.Create(ctx, &j); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create journey failed"})
	}
	det, err := h.Journeys.GetByID(ctx, j.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load journey failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": det})
}

// UpdateJourney handles PUT /v1/journeys/:id (ADMIN).  The same
// schedule and reference validation as creation applies.
func (h *JourneyHandler) UpdateJourney(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid journey id"})
	}
	var req journeyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.TrainID == 0 || req.RouteID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "train and route are required"})
	}
	j := model.Journey{
		ID:            id,
		TrainID:       req.TrainID,
		RouteID:       req.RouteID,
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
	}
	if err := j.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if resp := h.resolveJourneyRefs(ctx, c, req); resp != nil {
		return resp
	}
	if err := h.Journeys.Update(ctx, &j); err != nil {
		if errors.Is(err, repository.ErrJourneyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "journey not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update journey failed"})
	}
	det, err := h.Journeys.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load journey failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": det})
}

// DeleteJourney handles DELETE /v1/journeys/:id (ADMIN).  A journey
// with sold tickets cannot be removed.
func (h *JourneyHandler) DeleteJourney(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid journey id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Journeys.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJourneyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "journey not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "journey has sold tickets"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete journey failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
