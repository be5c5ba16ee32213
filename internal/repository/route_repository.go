package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// RouteRepo provides access to routes.  A route references two station
// rows; the derived distance is computed from their coordinates when a
// route is read, never stored.
type RouteRepo struct {
	db *sql.DB
}

func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// RouteRow is a route joined with both station endpoints plus the
// derived distance.
type RouteRow struct {
	ID              uint64 `json:"id"`
	SourceID        uint64 `json:"source"`
	SourceName      string `json:"source_name"`
	DestinationID   uint64 `json:"destination"`
	DestinationName string `json:"destination_name"`
	Distance        int    `json:"distance"`
}

// Create inserts a route and populates the generated ID.  The station
// references must exist; a failing foreign key surfaces as a driver
// error which handlers report as a validation failure.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO routes (source_id, destination_id) VALUES (?,?)",
		rt.SourceID, rt.DestinationID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// GetByID fetches a route with its endpoints and derived distance.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (RouteRow, error) {
	const q = `SELECT r.id,
	                  src.id, src.name, src.latitude, src.longitude,
	                  dst.id, dst.name, dst.latitude, dst.longitude
	           FROM routes r
	           JOIN stations src ON src.id = r.source_id
	           JOIN stations dst ON dst.id = r.destination_id
	           WHERE r.id = ?`
	var (
		row      RouteRow
		src, dst model.Station
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID,
		&src.ID, &src.Name, &src.Latitude, &src.Longitude,
		&dst.ID, &dst.Name, &dst.Latitude, &dst.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return row, ErrRouteNotFound
	}
	if err != nil {
		return row, err
	}
	row.SourceID = src.ID
	row.SourceName = src.Name
	row.DestinationID = dst.ID
	row.DestinationName = dst.Name
	row.Distance = model.Distance(src, dst)
	return row, nil
}

// List returns all routes with endpoints and derived distances, ordered
// by id.
func (r *RouteRepo) List(ctx context.Context) ([]RouteRow, error) {
	const q = `SELECT r.id,
	                  src.id, src.name, src.latitude, src.longitude,
	                  dst.id, dst.name, dst.latitude, dst.longitude
	           FROM routes r
	           JOIN stations src ON src.id = r.source_id
	           JOIN stations dst ON dst.id = r.destination_id
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RouteRow, 0)
	for rows.Next() {
		var (
			row      RouteRow
			src, dst model.Station
		)
		if err := rows.Scan(
			&row.ID,
			&src.ID, &src.Name, &src.Latitude, &src.Longitude,
			&dst.ID, &dst.Name, &dst.Latitude, &dst.Longitude); err != nil {
			return nil, err
		}
		row.SourceID = src.ID
		row.SourceName = src.Name
		row.DestinationID = dst.ID
		row.DestinationName = dst.Name
		row.Distance = model.Distance(src, dst)
		out = append(out, row)
	}
	return out, rows.Err()
}
