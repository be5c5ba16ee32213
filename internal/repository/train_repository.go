package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/train-station-booking/internal/model"
)

// TrainRepo provides access to trains and train types.  Train rows are
// read by the booking path as a snapshot at validation time: the
// dimensions loaded inside the order transaction are what seat requests
// are checked against.
type TrainRepo struct {
	db *sql.DB
}

func NewTrainRepo(db *sql.DB) *TrainRepo { return &TrainRepo{db: db} }

// TrainRow is a train joined with its type name, as returned by List
// and GetByID for display.
type TrainRow struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	TypeID        uint64 `json:"type_id"`
	TypeName      string `json:"type"`
	WagonCount    uint32 `json:"wagon_count"`
	WagonCapacity uint32 `json:"wagon_capacity"`
	Capacity      uint32 `json:"capacity"`
}

// ListTypes returns all train types ordered by id.
func (r *TrainRepo) ListTypes(ctx context.Context) ([]model.TrainType, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM train_types ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.TrainType, 0)
	for rows.Next() {
		var t model.TrainType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTypeByID fetches a train type.  ErrTrainTypeNotFound is returned
// when no row exists.
func (r *TrainRepo) GetTypeByID(ctx context.Context, id uint64) (model.TrainType, error) {
	var t model.TrainType
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM train_types WHERE id=? LIMIT 1", id).Scan(&t.ID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrTrainTypeNotFound
	}
	return t, err
}

// Create inserts a train and populates the generated ID.  The caller is
// expected to have validated wagon_count and wagon_capacity (both >= 1)
// and the type reference.
func (r *TrainRepo) Create(ctx context.Context, t *model.Train) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO trains (name, type_id, wagon_count, wagon_capacity) VALUES (?,?,?,?)",
		t.Name, t.TypeID, t.WagonCount, t.WagonCapacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a train with its type name.
func (r *TrainRepo) GetByID(ctx context.Context, id uint64) (TrainRow, error) {
	const q = `SELECT t.id, t.name, t.type_id, tt.name, t.wagon_count, t.wagon_capacity
	           FROM trains t
	           JOIN train_types tt ON tt.id = t.type_id
	           WHERE t.id = ?`
	var row TrainRow
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &row.Name, &row.TypeID, &row.TypeName, &row.WagonCount, &row.WagonCapacity)
	if errors.Is(err, sql.ErrNoRows) {
		return row, ErrTrainNotFound
	}
	if err != nil {
		return row, err
	}
	row.Capacity = row.WagonCount * row.WagonCapacity
	return row, nil
}

// List returns all trains with their type names, ordered by id.
func (r *TrainRepo) List(ctx context.Context) ([]TrainRow, error) {
	const q = `SELECT t.id, t.name, t.type_id, tt.name, t.wagon_count, t.wagon_capacity
	           FROM trains t
	           JOIN train_types tt ON tt.id = t.type_id
	           ORDER BY t.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TrainRow, 0)
	for rows.Next() {
		var row TrainRow
		if err := rows.Scan(&row.ID, &row.Name, &row.TypeID, &row.TypeName,
			&row.WagonCount, &row.WagonCapacity); err != nil {
			return nil, err
		}
		row.Capacity = row.WagonCount * row.WagonCapacity
		out = append(out, row)
	}
	return out, rows.Err()
}
