package ports

import (
	"context"
	"trip-route-service/internal/domain"
)

// Optional cache of plan-route results keyed by a request fingerprint.
type PlanCache interface {
	// Return the cached plan and true on a hit.
	Get(ctx context.Context, key string) (*domain.TripPlan, bool, error)
	Put(ctx context.Context, key string, plan *domain.TripPlan) error
}
