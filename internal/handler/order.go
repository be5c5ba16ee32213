package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-station-booking/internal/booking"
	"github.com/iliyamo/train-station-booking/internal/queue"
	"github.com/iliyamo/train-station-booking/internal/repository"
	publisher "github.com/iliyamo/train-station-booking/internal/service"
)

// OrderHandler owns the order write path.  An order is all-or-nothing:
// every ticket line is validated against the journey's seat ledger
// inside one database transaction, and a single bad line rolls back the
// whole batch.  Readers never see a partially written order.
type OrderHandler struct {
	Orders   *repository.OrderRepo
	Journeys *repository.JourneyRepo
}

func NewOrderHandler(orders *repository.OrderRepo, journeys *repository.JourneyRepo) *OrderHandler {
	if orders == nil || journeys == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: orders, Journeys: journeys}
}

type ticketLineReq struct {
	JourneyID   uint64 `json:"journey"`
	WagonNumber uint32 `json:"wagon_number"`
	SeatNumber  uint32 `json:"seat_number"`
}

type createOrderReq struct {
	Tickets []ticketLineReq `json:"tickets"`
}

// ticketLineError points a validation failure back at the request line
// that caused it.
type ticketLineError struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type createdTicket struct {
	JourneyID   uint64 `json:"journey"`
	WagonNumber uint32 `json:"wagon_number"`
	SeatNumber  uint32 `json:"seat_number"`
}

type createOrderResp struct {
	ID        uint64          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Tickets   []createdTicket `json:"tickets"`
}

func lineError(c echo.Context, line int, field, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":   "invalid tickets",
		"tickets": []ticketLineError{{Line: line, Field: field, Message: message}},
	})
}

// CreateOrder handles POST /v1/orders (CUSTOMER).
//
// All ticket lines run inside one transaction.  Sold seats of each
// referenced journey are read with a locking read, so two concurrent
// orders for the same journey serialize; whichever loses still hits
// the unique key on tickets and gets the same "seat already sold"
// answer.  The ledger accumulates accepted lines, so a duplicate seat
// inside the batch is rejected like any other sold seat.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Tickets) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tickets must not be empty"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Orders.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// One ledger per distinct journey in the batch.  Each is seeded
	// from the locked sold-seat read once and then shared by every
	// line referencing that journey.
	ledgers := make(map[uint64]*booking.Ledger)
	for i, line := range req.Tickets {
		if line.JourneyID == 0 {
			return lineError(c, i, "journey", "journey is required")
		}
		ledger, ok := ledgers[line.JourneyID]
		if !ok {
			_, train, err := h.Journeys.GetWithTrainTx(ctx, tx, line.JourneyID)
			if err != nil {
				if errors.Is(err, repository.ErrJourneyNotFound) {
					return lineError(c, i, "journey", "journey not found")
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load journey failed"})
			}
			sold, err := h.Orders.SoldSeatsTx(ctx, tx, line.JourneyID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sold seats failed"})
			}
			ledger = booking.NewLedger(train, sold)
			ledgers[line.JourneyID] = ledger
		}
		if verr := ledger.Reserve(line.WagonNumber, line.SeatNumber); verr != nil {
			return lineError(c, i, verr.Field, verr.Message)
		}
	}

	rec := repository.OrderRecord{UserID: userID}
	if err := h.Orders.CreateTx(ctx, tx, &rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}

	tickets := make([]repository.TicketRecord, 0, len(req.Tickets))
	for _, line := range req.Tickets {
		tickets = append(tickets, repository.TicketRecord{
			OrderID:     rec.ID,
			JourneyID:   line.JourneyID,
			WagonNumber: line.WagonNumber,
			SeatNumber:  line.SeatNumber,
		})
	}
	if err := h.Orders.CreateTicketsBulkTx(ctx, tx, tickets); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":   "invalid tickets",
				"tickets": []ticketLineError{{Line: 0, Field: "seat_number", Message: "seat already sold"}},
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create tickets failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	resp := createOrderResp{ID: rec.ID, CreatedAt: rec.CreatedAt, Tickets: make([]createdTicket, 0, len(tickets))}
	event := queue.OrderCreatedEvent{
		OrderID:   rec.ID,
		UserID:    userID,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, createdTicket{
			JourneyID: t.JourneyID, WagonNumber: t.WagonNumber, SeatNumber: t.SeatNumber,
		})
		event.Tickets = append(event.Tickets, queue.OrderTicket{
			JourneyID: t.JourneyID, WagonNumber: t.WagonNumber, SeatNumber: t.SeatNumber,
		})
	}

	// The order is committed; a broker outage must not fail the request.
	go func() {
		pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pcancel()
		_ = publisher.PublishOrderCreated(pctx, event)
	}()

	return c.JSON(http.StatusCreated, resp)
}

// ListOrders handles GET /v1/orders and returns the caller's own orders
// with their tickets, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	orders, err := h.Orders.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load orders failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orders})
}
