package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the TripRepository port.
type PostgresTripRepository struct{ DB *sql.DB }

func NewPostgresTripRepository(db *sql.DB) *PostgresTripRepository {
	return &PostgresTripRepository{DB: db}
}

// Insert or replace a trip record.
func (p *PostgresTripRepository) SaveTrip(ctx context.Context, rec domain.TripRecord) (err error) {
	defer obs.Time(ctx, "trips.SaveTrip")(&err)

	if p.DB == nil {
		return errors.New("postgres trip repository: DB is nil")
	}
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("save trip: trip id must not be empty")
	}

	query := `
	INSERT INTO trips (
		trip_id,
		upstream_trip_id,
		name,
		start_time,
		current_lat,
		current_lng,
		pickup_lat,
		pickup_lng,
		dropoff_lat,
		dropoff_lng,
		cycle_hours_used,
		total_miles,
		total_hours,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (trip_id) DO UPDATE
	SET upstream_trip_id = EXCLUDED.upstream_trip_id,
		name = EXCLUDED.name,
		start_time = EXCLUDED.start_time,
		current_lat = EXCLUDED.current_lat,
		current_lng = EXCLUDED.current_lng,
		pickup_lat = EXCLUDED.pickup_lat,
		pickup_lng = EXCLUDED.pickup_lng,
		dropoff_lat = EXCLUDED.dropoff_lat,
		dropoff_lng = EXCLUDED.dropoff_lng,
		cycle_hours_used = EXCLUDED.cycle_hours_used,
		total_miles = EXCLUDED.total_miles,
		total_hours = EXCLUDED.total_hours;
	`

	_, err = p.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UpstreamTripID,
		rec.Name,
		rec.StartTime,
		rec.Current.Lat, rec.Current.Lon,
		rec.Pickup.Lat, rec.Pickup.Lon,
		rec.Dropoff.Lat, rec.Dropoff.Lon,
		rec.CycleHoursUsed,
		rec.TotalMiles,
		rec.TotalHours,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save trip trip_id=%q: %w", rec.ID, err)
	}

	return nil
}

// Return the most recent trips, newest first.
func (p *PostgresTripRepository) ListTrips(ctx context.Context, limit int) (_ []domain.TripRecord, err error) {
	defer obs.Time(ctx, "trips.ListTrips")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres trip repository: DB is nil")
	}
	if limit < 1 {
		return nil, fmt.Errorf("list trips: limit %d must be positive", limit)
	}

	query := `
	SELECT
		trip_id,
		upstream_trip_id,
		name,
		start_time,
		current_lat,
		current_lng,
		pickup_lat,
		pickup_lng,
		dropoff_lat,
		dropoff_lng,
		cycle_hours_used,
		total_miles,
		total_hours,
		created_at
	FROM trips
	ORDER BY created_at DESC, trip_id
	LIMIT $1;
	`
	rows, err := p.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]domain.TripRecord, 0, limit)
	for rows.Next() {
		var rec domain.TripRecord
		err := rows.Scan(
			&rec.ID,
			&rec.UpstreamTripID,
			&rec.Name,
			&rec.StartTime,
			&rec.Current.Lat, &rec.Current.Lon,
			&rec.Pickup.Lat, &rec.Pickup.Lon,
			&rec.Dropoff.Lat, &rec.Dropoff.Lon,
			&rec.CycleHoursUsed,
			&rec.TotalMiles,
			&rec.TotalHours,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		trips = append(trips, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}
