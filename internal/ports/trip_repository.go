package ports

import (
	"context"
	"trip-route-service/internal/domain"
)

// Port: a boundary for storing and retrieving planned trips.
type TripRepository interface {
	SaveTrip(ctx context.Context, rec domain.TripRecord) error
	// Return the most recently created trips, newest first.
	ListTrips(ctx context.Context, limit int) ([]domain.TripRecord, error)
}
