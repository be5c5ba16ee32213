package database

import (
	"context"
	"database/sql"
)

// TrainTypeNames is the canonical set of train categories.  Trains must
// reference one of these rows.
var TrainTypeNames = []string{
	"Long-distance",
	"Express",
	"Regional",
	"Inter-City",
}

// SeedTrainTypes inserts the canonical train types if they are missing.
// It runs once at process startup and is idempotent: existing rows are
// left untouched (INSERT IGNORE keys on the unique name), so re-running
// it never disturbs trains already referencing a type.
func SeedTrainTypes(ctx context.Context, db *sql.DB) error {
	const q = `INSERT IGNORE INTO train_types (name) VALUES (?)`
	for _, name := range TrainTypeNames {
		if _, err := db.ExecContext(ctx, q, name); err != nil {
			return err
		}
	}
	return nil
}
