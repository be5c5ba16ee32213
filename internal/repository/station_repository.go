package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// StationRepo provides access to the stations catalog.  Stations are
// simple lookup rows; the booking core only ever reads them.
type StationRepo struct {
	db *sql.DB
}

func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{db: db} }

// Create inserts a station and populates the generated ID.
func (r *StationRepo) Create(ctx context.Context, s *model.Station) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO stations (name, latitude, longitude) VALUES (?,?,?)",
		s.Name, s.Latitude, s.Longitude)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a single station.  ErrStationNotFound is returned
// when no row exists.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (model.Station, error) {
	var s model.Station
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, latitude, longitude FROM stations WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrStationNotFound
	}
	return s, err
}

// List returns all stations ordered by id.
func (r *StationRepo) List(ctx context.Context) ([]model.Station, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, latitude, longitude FROM stations ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Station, 0)
	for rows.Next() {
		var s model.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
