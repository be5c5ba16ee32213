package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// JourneyRepo provides access to journeys and their availability.  The
// listing queries annotate every journey with tickets_available, which
// counts committed tickets only: uncommitted order transactions are
// invisible to readers, so the number can only shrink as bookings land.
type JourneyRepo struct {
	db *sql.DB
}

func NewJourneyRepo(db *sql.DB) *JourneyRepo { return &JourneyRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *JourneyRepo) DB() *sql.DB { return r.db }

// JourneyFilter narrows the journey listing.  Date matches the calendar
// date of departure.  SourceID and DestinationID filter on the route's
// actual endpoints and apply only when both are set.
type JourneyFilter struct {
	Date          *time.Time
	SourceID      uint64
	DestinationID uint64
}

// JourneyRow is the listing read model: journey, train, route endpoints
// and the availability annotation.
type JourneyRow struct {
	ID               uint64    `json:"id"`
	TrainID          uint64    `json:"train_id"`
	TrainName        string    `json:"train_name"`
	Capacity         uint32    `json:"train_capacity"`
	RouteID          uint64    `json:"route_id"`
	SourceID         uint64    `json:"source"`
	SourceName       string    `json:"source_name"`
	DestinationID    uint64    `json:"destination"`
	DestinationName  string    `json:"destination_name"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Duration         string    `json:"duration"`
	TicketsAvailable int64     `json:"tickets_available"`
}

// SoldSeat is one taken place on a journey, shown on the detail view.
type SoldSeat struct {
	WagonNumber uint32 `json:"wagon_number"`
	SeatNumber  uint32 `json:"seat_number"`
}

// JourneyDetail extends JourneyRow with the full list of taken places.
type JourneyDetail struct {
	JourneyRow
	SoldSeats []SoldSeat `json:"taken_places"`
}

const journeySelect = `SELECT j.id,
	       t.id, t.name, t.wagon_count * t.wagon_capacity,
	       r.id, src.id, src.name, dst.id, dst.name,
	       j.departure_time, j.arrival_time,
	       (t.wagon_count * t.wagon_capacity) -
	           (SELECT COUNT(*) FROM tickets tk WHERE tk.journey_id = j.id)
	FROM journeys j
	JOIN trains t   ON t.id = j.train_id
	JOIN routes r   ON r.id = j.route_id
	JOIN stations src ON src.id = r.source_id
	JOIN stations dst ON dst.id = r.destination_id`

func scanJourneyRow(scan func(dest ...any) error) (JourneyRow, error) {
	var row JourneyRow
	err := scan(
		&row.ID,
		&row.TrainID, &row.TrainName, &row.Capacity,
		&row.RouteID, &row.SourceID, &row.SourceName, &row.DestinationID, &row.DestinationName,
		&row.DepartureTime, &row.ArrivalTime,
		&row.TicketsAvailable)
	if err != nil {
		return row, err
	}
	row.Duration = row.ArrivalTime.Sub(row.DepartureTime).String()
	return row, nil
}

// List returns journeys matching the filter, annotated with
// tickets_available, ordered by departure time.
func (r *JourneyRepo) List(ctx context.Context, f JourneyFilter) ([]JourneyRow, error) {
	where := []string{}
	args := []any{}
	if f.Date != nil {
		where = append(where, "DATE(j.departure_time) = ?")
		args = append(args, f.Date.Format("2006-01-02"))
	}
	if f.SourceID != 0 && f.DestinationID != 0 {
		where = append(where, "r.source_id = ?", "r.destination_id = ?")
		args = append(args, f.SourceID, f.DestinationID)
	}
	q := journeySelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY j.departure_time ASC, j.id ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]JourneyRow, 0)
	for rows.Next() {
		row, err := scanJourneyRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetByID returns one journey with availability and its taken places.
func (r *JourneyRepo) GetByID(ctx context.Context, id uint64) (*JourneyDetail, error) {
	row, err := scanJourneyRow(r.db.QueryRowContext(ctx, journeySelect+" WHERE j.id = ?", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJourneyNotFound
	}
	if err != nil {
		return nil, err
	}
	det := &JourneyDetail{JourneyRow: row, SoldSeats: []SoldSeat{}}
	const seatQ = `SELECT wagon_number, seat_number FROM tickets
	               WHERE journey_id = ? ORDER BY wagon_number, seat_number`
	seats, err := r.db.QueryContext(ctx, seatQ, id)
	if err != nil {
		return nil, err
	}
	defer seats.Close()
	for seats.Next() {
		var s SoldSeat
		if err := seats.Scan(&s.WagonNumber, &s.SeatNumber); err != nil {
			return nil, err
		}
		det.SoldSeats = append(det.SoldSeats, s)
	}
	return det, seats.Err()
}

// Create inserts a journey and populates the generated ID.  Schedule
// validation (arrival after departure) happens in the handler before
// this is called.
func (r *JourneyRepo) Create(ctx context.Context, j *model.Journey) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO journeys (train_id, route_id, departure_time, arrival_time) VALUES (?,?,?,?)",
		j.TrainID, j.RouteID, j.DepartureTime, j.ArrivalTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	j.ID = uint64(id)
	return nil
}

// Update replaces a journey's train, route and schedule.
func (r *JourneyRepo) Update(ctx context.Context, j *model.Journey) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE journeys SET train_id=?, route_id=?, departure_time=?, arrival_time=? WHERE id=?",
		j.TrainID, j.RouteID, j.DepartureTime, j.ArrivalTime, j.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op
		// update; distinguish with an existence check.
		var exists uint64
		err := r.db.QueryRowContext(ctx, "SELECT id FROM journeys WHERE id=? LIMIT 1", j.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrJourneyNotFound
		}
		return err
	}
	return nil
}

// Delete removes a journey.  A journey with sold tickets cannot be
// deleted and yields ErrConflict.
func (r *JourneyRepo) Delete(ctx context.Context, id uint64) error {
	var sold int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE journey_id=?", id).Scan(&sold); err != nil {
		return err
	}
	if sold > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM journeys WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJourneyNotFound
	}
	return nil
}

// GetWithTrainTx loads a journey together with its train inside an open
// transaction.  The order path uses this so seat validation runs
// against the same snapshot the tickets will be written into.
func (r *JourneyRepo) GetWithTrainTx(ctx context.Context, tx *sql.Tx, journeyID uint64) (model.Journey, model.Train, error) {
	const q = `SELECT j.id, j.train_id, j.route_id, j.departure_time, j.arrival_time,
	                  t.id, t.name, t.type_id, t.wagon_count, t.wagon_capacity
	           FROM journeys j
	           JOIN trains t ON t.id = j.train_id
	           WHERE j.id = ?`
	var (
		j model.Journey
		t model.Train
	)
	err := tx.QueryRowContext(ctx, q, journeyID).Scan(
		&j.ID, &j.TrainID, &j.RouteID, &j.DepartureTime, &j.ArrivalTime,
		&t.ID, &t.Name, &t.TypeID, &t.WagonCount, &t.WagonCapacity)
	if errors.Is(err, sql.ErrNoRows) {
		return j, t, ErrJourneyNotFound
	}
	return j, t, err
}
