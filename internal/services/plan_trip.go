package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// The outcome of planning one trip: what was stored, what upstream returned,
// and where each marker goes on the map.
type PlannedTrip struct {
	Record    domain.TripRecord
	Plan      *domain.TripPlan
	Placement domain.TripPlacement
}

// EstimateTripMiles is the pickup-to-dropoff great-circle distance rounded to
// two decimals, used when the caller has no service-computed mileage yet.
func EstimateTripMiles(req domain.TripRequest) float64 {
	return math.Round(DistanceMiles(req.Pickup, req.Dropoff)*100) / 100
}

// PlanTrip validates the request, asks the plan-route service for a route and
// HOS schedule, records the trip, and places the operational events on the
// route.
//
// Storing the trip is best effort: a repository failure is logged and the
// planned trip is still returned.
func PlanTrip(
	ctx context.Context,
	req domain.TripRequest,
	planner ports.TripPlanner,
	repo ports.TripRepository,
) (_ *PlannedTrip, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	if planner == nil {
		return nil, errors.New("plan trip: planner must be non-nil")
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	if req.TotalMiles == nil {
		est := EstimateTripMiles(req)
		req.TotalMiles = &est
	}

	plan, err := planner.PlanTrip(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("plan trip: call planner: %w", err)
	}
	if plan == nil {
		return nil, errors.New("plan trip: planner returned no plan")
	}

	rec := domain.NewTripRecord(uuid.NewString(), req, plan, time.Now().UTC())

	if repo != nil {
		if err := repo.SaveTrip(ctx, rec); err != nil {
			log.Warn().Err(err).Str("trip_id", rec.ID).Msg("save trip failed")
		}
	}

	placement := PlaceTripEvents(plan)

	log.Debug().
		Str("trip_id", rec.ID).
		Int("route_points", len(plan.Route.Points)).
		Float64("route_miles", plan.Route.TotalMiles).
		Int("fuel", len(placement.Fuel)).
		Int("rest", len(placement.Rest)).
		Int("violations", len(placement.Violations)).
		Msg("trip events placed")

	return &PlannedTrip{
		Record:    rec,
		Plan:      plan,
		Placement: placement,
	}, nil
}

// ListTrips returns recently planned trips, newest first.
func ListTrips(ctx context.Context, repo ports.TripRepository, limit int) ([]domain.TripRecord, error) {
	if repo == nil {
		return nil, errors.New("list trips: repository must be non-nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list trips: limit must be positive, got %d", limit)
	}

	trips, err := repo.ListTrips(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}
