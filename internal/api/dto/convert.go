package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/services"
)

// Layouts accepted for start_time: RFC 3339 and the browser datetime-local
// format, the latter taken as UTC.
var startTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ToDomain converts the request body into a TripRequest. Range checks are left
// to TripRequest.Validate.
func (r PlanTripRequest) ToDomain() (domain.TripRequest, error) {
	current, err := ParseCoordinate("current", r.Current)
	if err != nil {
		return domain.TripRequest{}, err
	}
	pickup, err := ParseCoordinate("pickup", r.Pickup)
	if err != nil {
		return domain.TripRequest{}, err
	}
	dropoff, err := ParseCoordinate("dropoff", r.Dropoff)
	if err != nil {
		return domain.TripRequest{}, err
	}

	start, err := parseStartTime(r.StartTime)
	if err != nil {
		return domain.TripRequest{}, err
	}

	var cycle float64
	if r.CycleHoursUsed != nil {
		cycle = *r.CycleHoursUsed
	}

	return domain.TripRequest{
		Name:           r.Name,
		Current:        current,
		Pickup:         pickup,
		Dropoff:        dropoff,
		StartTime:      start,
		CycleHoursUsed: cycle,
		TotalMiles:     r.TotalMiles,
	}, nil
}

// ParseCoordinate reads a [lat, lng] pair.
func ParseCoordinate(field string, v []float64) (domain.Coordinate, error) {
	if len(v) != 2 {
		return domain.Coordinate{}, fmt.Errorf("%s must be a [lat, lng] pair", field)
	}
	return domain.Coordinate{Lat: v[0], Lon: v[1]}, nil
}

func parseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("start_time is required")
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("start_time must be ISO format")
}

func NewTripResponse(rec domain.TripRecord) TripResponse {
	return TripResponse{
		ID:             rec.ID,
		UpstreamTripID: rec.UpstreamTripID,
		Name:           rec.Name,
		StartTime:      rec.StartTime,
		Current:        rec.Current.LatLng(),
		Pickup:         rec.Pickup.LatLng(),
		Dropoff:        rec.Dropoff.LatLng(),
		CycleHoursUsed: rec.CycleHoursUsed,
		TotalMiles:     rec.TotalMiles,
		TotalHours:     rec.TotalHours,
		CreatedAt:      rec.CreatedAt,
	}
}

func NewPlanTripResponse(pt *services.PlannedTrip) PlanTripResponse {
	plan := pt.Plan

	points := make([][]float64, 0, len(plan.Route.Points))
	for _, p := range plan.Route.Points {
		points = append(points, p.LatLng())
	}

	return PlanTripResponse{
		Trip: NewTripResponse(pt.Record),
		Route: RouteResponse{
			Points:     points,
			TotalMiles: plan.Route.TotalMiles,
		},
		TotalHours: plan.TotalHours,
		TotalMiles: plan.TotalMiles,
		Markers:    NewMarkersResponse(pt.Placement),
		Summary: HOSSummaryResponse{
			TotalDriveHours:     plan.Summary.TotalDriveHours,
			TotalMiles:          plan.Summary.TotalMiles,
			CycleHoursUsed:      plan.Summary.CycleHoursUsed,
			RemainingDriveHours: plan.Summary.RemainingDriveHours,
			DaysSimulated:       plan.Summary.DaysSimulated,
		},
	}
}

func NewMarkersResponse(p domain.TripPlacement) MarkersResponse {
	res := MarkersResponse{
		Fuel:       make([]FuelMarker, 0, len(p.Fuel)),
		Rest:       make([]RestMarker, 0, len(p.Rest)),
		Violations: make([]ViolationMarker, 0, len(p.Violations)),
	}

	for _, f := range p.Fuel {
		res.Fuel = append(res.Fuel, FuelMarker{
			MarkerPosition: markerPosition(f.Event, f.Mile, f.Position),
			ETA:            f.Event.ETA,
		})
	}
	for _, r := range p.Rest {
		res.Rest = append(res.Rest, RestMarker{
			MarkerPosition: markerPosition(r.Event, r.Mile, r.Position),
			Start:          r.Event.Start,
			End:            r.Event.End,
			Note:           r.Event.Note,
		})
	}
	for _, v := range p.Violations {
		res.Violations = append(res.Violations, ViolationMarker{
			MarkerPosition: markerPosition(v.Event, v.Mile, v.Position),
			Type:           v.Event.Type,
			Note:           v.Event.Note,
			Time:           v.Event.Time,
		})
	}

	return res
}

func markerPosition(ev domain.OperationalEvent, mile float64, pos domain.Coordinate) MarkerPosition {
	_, explicit := ev.MileAlongRoute()
	return MarkerPosition{
		Latitude:      pos.Lat,
		Longitude:     pos.Lon,
		Mile:          mile,
		EstimatedMile: !explicit,
	}
}
