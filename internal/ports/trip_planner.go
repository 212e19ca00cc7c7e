package ports

import (
	"context"
	"errors"

	"trip-route-service/internal/domain"
)

// Contract for the external routing/HOS simulation service.
type TripPlanner interface {
	// Return the route and HOS events for a validated trip request.
	PlanTrip(ctx context.Context, req domain.TripRequest) (*domain.TripPlan, error)
}

// ErrPlannerRejected matches every error returned when the upstream service
// refuses a request as invalid (as opposed to failing).
var ErrPlannerRejected = errors.New("planner rejected request")

// PlannerRejectedError carries the upstream's own explanation of a refusal.
// Message is safe to show to API clients.
type PlannerRejectedError struct {
	Message string
}

func (e *PlannerRejectedError) Error() string {
	return ErrPlannerRejected.Error() + ": " + e.Message
}

func (e *PlannerRejectedError) Is(target error) bool {
	return target == ErrPlannerRejected
}
