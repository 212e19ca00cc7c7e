package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CycleLimitHours is the 70-hour/8-day on-duty limit enforced upstream.
const CycleLimitHours = 70.0

// A request to plan a trip from the driver's current position through a
// pickup to a dropoff.
// TotalMiles is optional: when unset the service estimates it before the
// plan-route call.
type TripRequest struct {
	Name           string
	Current        Coordinate
	Pickup         Coordinate
	Dropoff        Coordinate
	StartTime      time.Time
	CycleHoursUsed float64
	TotalMiles     *float64
}

// ErrInvalidTripRequest wraps every TripRequest validation failure.
var ErrInvalidTripRequest = errors.New("invalid trip request")

// Validate checks the request fields the plan-route service depends on.
func (r TripRequest) Validate() error {
	if err := r.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTripRequest, err)
	}
	return nil
}

func (r TripRequest) validate() error {
	if r.StartTime.IsZero() {
		return errors.New("start_time is required")
	}

	named := []struct {
		name  string
		coord Coordinate
	}{
		{"current", r.Current},
		{"pickup", r.Pickup},
		{"dropoff", r.Dropoff},
	}
	for _, n := range named {
		if err := n.coord.Validate(); err != nil {
			return fmt.Errorf("%s: %w", n.name, err)
		}
	}

	if r.CycleHoursUsed < 0 || r.CycleHoursUsed > CycleLimitHours {
		return fmt.Errorf("cycle_hours_used must be between 0 and %v", CycleLimitHours)
	}

	if r.TotalMiles != nil && *r.TotalMiles < 0 {
		return errors.New("total_miles must not be negative")
	}

	return nil
}

// Trimmed trip name, or a placeholder for unnamed trips.
func (r TripRequest) DisplayName() string {
	if n := strings.TrimSpace(r.Name); n != "" {
		return n
	}
	return "Unnamed Trip"
}

// Aggregate figures from the HOS simulation.
type HOSSummary struct {
	TotalDriveHours     float64
	TotalMiles          float64
	CycleHoursUsed      float64
	RemainingDriveHours float64
	DaysSimulated       int
}

// Represents the fully typed result of one plan-route call.
// All optional upstream fields have been resolved at the parsing boundary so
// the placement core only ever sees complete values.
type TripPlan struct {
	TripID      string
	Route       Route
	TotalHours  float64
	TotalMiles  float64
	FuelStops   []FuelStop
	RestPeriods []RestPeriod
	Violations  []Violation
	Summary     HOSSummary
}

// A persisted trip: the request plus the headline figures of its plan.
// ID is unique per planning request; UpstreamTripID is whatever id the
// plan-route service reported and may repeat across cached plans.
type TripRecord struct {
	ID             string
	UpstreamTripID string
	Name           string
	StartTime      time.Time
	Current        Coordinate
	Pickup         Coordinate
	Dropoff        Coordinate
	CycleHoursUsed float64
	TotalMiles     float64
	TotalHours     float64
	CreatedAt      time.Time
}

// NewTripRecord combines a request and its plan into a record ready to store.
func NewTripRecord(id string, req TripRequest, plan *TripPlan, createdAt time.Time) TripRecord {
	rec := TripRecord{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		StartTime:      req.StartTime,
		Current:        req.Current,
		Pickup:         req.Pickup,
		Dropoff:        req.Dropoff,
		CycleHoursUsed: req.CycleHoursUsed,
		CreatedAt:      createdAt,
	}
	if plan != nil {
		rec.UpstreamTripID = plan.TripID
		rec.TotalMiles = plan.TotalMiles
		rec.TotalHours = plan.TotalHours
	}
	return rec
}
