package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for planned trips.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		upstream_trip_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		start_time TIMESTAMPTZ NOT NULL,
		current_lat DOUBLE PRECISION NOT NULL,
		current_lng DOUBLE PRECISION NOT NULL,
		pickup_lat DOUBLE PRECISION NOT NULL,
		pickup_lng DOUBLE PRECISION NOT NULL,
		dropoff_lat DOUBLE PRECISION NOT NULL,
		dropoff_lng DOUBLE PRECISION NOT NULL,
		cycle_hours_used DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_miles DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	// Tables created before upstream ids were tracked.
	addUpstreamIDQuery := `
	ALTER TABLE trips
	ADD COLUMN IF NOT EXISTS upstream_trip_id TEXT NOT NULL DEFAULT '';
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
	ON trips(created_at DESC);
	`

	statements := []string{
		createTripsQuery,
		addUpstreamIDQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
