package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/train-station-booking/internal/booking"
)

// OrderRepo provides the write path for orders and tickets and the
// read path for a user's booking history.  Ticket inserts are the only
// mutation of the sold-seat state anywhere in the service, and they
// always run inside a transaction owned by the order handler.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle so the handler can open the order
// transaction.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// OrderRecord mirrors the orders table for insertion.
type OrderRecord struct {
	ID        uint64
	UserID    uint64
	CreatedAt time.Time
}

// TicketRecord mirrors the tickets table for insertion.
type TicketRecord struct {
	OrderID     uint64
	JourneyID   uint64
	WagonNumber uint32
	SeatNumber  uint32
}

// SoldSeatsTx returns the (wagon, seat) pairs already sold for a
// journey, read inside the order transaction with a locking read so a
// concurrent order for the same journey serializes behind this one.
// The unique key on tickets still backstops anything the lock misses.
func (r *OrderRepo) SoldSeatsTx(ctx context.Context, tx *sql.Tx, journeyID uint64) ([]booking.SeatKey, error) {
	const q = `SELECT wagon_number, seat_number FROM tickets
	           WHERE journey_id = ? FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, journeyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []booking.SeatKey
	for rows.Next() {
		var k booking.SeatKey
		if err := rows.Scan(&k.Wagon, &k.Seat); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// CreateTx inserts an order row within the transaction and populates
// the generated ID and creation timestamp on the record.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *OrderRecord) error {
	res, err := tx.ExecContext(ctx, "INSERT INTO orders (user_id) VALUES (?)", rec.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM orders WHERE id = ?", rec.ID).Scan(&rec.CreatedAt)
}

// CreateTicketsBulkTx inserts all tickets of an order in one statement.
// A duplicate-key failure means another transaction committed one of
// these seats after our advisory checks passed; it is returned as
// ErrSeatTaken so the handler can reject the whole order as a seat
// conflict rather than an internal error.
func (r *OrderRepo) CreateTicketsBulkTx(ctx context.Context, tx *sql.Tx, tickets []TicketRecord) error {
	if len(tickets) == 0 {
		return nil
	}
	query := `INSERT INTO tickets (order_id, journey_id, wagon_number, seat_number) VALUES `
	args := make([]interface{}, 0, len(tickets)*4)
	for i, t := range tickets {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, t.OrderID, t.JourneyID, t.WagonNumber, t.SeatNumber)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateKey(err) {
			return ErrSeatTaken
		}
		return err
	}
	return nil
}

// TicketDetail is one ticket of an order with its journey context.
type TicketDetail struct {
	ID              uint64    `json:"id"`
	JourneyID       uint64    `json:"journey"`
	WagonNumber     uint32    `json:"wagon_number"`
	SeatNumber      uint32    `json:"seat_number"`
	TrainName       string    `json:"train_name"`
	SourceName      string    `json:"source_name"`
	DestinationName string    `json:"destination_name"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
}

// OrderDetail is an order with its tickets, as returned to the owning
// user.
type OrderDetail struct {
	ID        uint64         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Tickets   []TicketDetail `json:"tickets"`
}

// ListByUser returns all orders of a user, newest first, each with its
// tickets and their journey context.  Tickets for all returned orders
// are fetched in a single query.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]OrderDetail, error) {
	const q = `SELECT id, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]OrderDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.ID, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Tickets = []TicketDetail{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	ticketQ := `SELECT tk.order_id, tk.id, tk.journey_id, tk.wagon_number, tk.seat_number,
	                   t.name, src.name, dst.name, j.departure_time, j.arrival_time
	            FROM tickets tk
	            JOIN journeys j ON j.id = tk.journey_id
	            JOIN trains t   ON t.id = j.train_id
	            JOIN routes rt  ON rt.id = j.route_id
	            JOIN stations src ON src.id = rt.source_id
	            JOIN stations dst ON dst.id = rt.destination_id
	            WHERE tk.order_id IN (` + strings.Join(placeholders, ",") + `)
	            ORDER BY tk.order_id, tk.id`
	trows, err := r.db.QueryContext(ctx, ticketQ, ids...)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var (
			orderID uint64
			td      TicketDetail
		)
		if err := trows.Scan(&orderID, &td.ID, &td.JourneyID, &td.WagonNumber, &td.SeatNumber,
			&td.TrainName, &td.SourceName, &td.DestinationName,
			&td.DepartureTime, &td.ArrivalTime); err != nil {
			return nil, err
		}
		idx, ok := index[orderID]
		if !ok {
			continue
		}
		details[idx].Tickets = append(details[idx].Tickets, td)
	}
	return details, trows.Err()
}
