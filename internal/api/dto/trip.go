package dto

import "time"

type PlanTripRequest struct {
	Name           string    `json:"name"`
	Current        []float64 `json:"current"`
	Pickup         []float64 `json:"pickup"`
	Dropoff        []float64 `json:"dropoff"`
	StartTime      string    `json:"start_time"`
	CycleHoursUsed *float64  `json:"cycle_hours_used"`
	TotalMiles     *float64  `json:"total_miles"`
}

type TripResponse struct {
	ID             string    `json:"id"`
	UpstreamTripID string    `json:"upstream_trip_id,omitempty"`
	Name           string    `json:"name"`
	StartTime      time.Time `json:"start_time"`
	Current        []float64 `json:"current"`
	Pickup         []float64 `json:"pickup"`
	Dropoff        []float64 `json:"dropoff"`
	CycleHoursUsed float64   `json:"cycle_hours_used"`
	TotalMiles     float64   `json:"total_miles"`
	TotalHours     float64   `json:"total_hours"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

// RouteResponse carries the polyline as [lat, lng] pairs ready for drawing.
type RouteResponse struct {
	Points     [][]float64 `json:"points"`
	TotalMiles float64     `json:"total_miles"`
}

// Marker fields shared by every located event. EstimatedMile is true when the
// service did not supply a mile and one was spread along the route.
type MarkerPosition struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Mile          float64 `json:"mile"`
	EstimatedMile bool    `json:"estimated_mile"`
}

type FuelMarker struct {
	MarkerPosition
	ETA time.Time `json:"eta"`
}

type RestMarker struct {
	MarkerPosition
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Note  *string   `json:"note,omitempty"`
}

type ViolationMarker struct {
	MarkerPosition
	Type string     `json:"type"`
	Note *string    `json:"note,omitempty"`
	Time *time.Time `json:"time,omitempty"`
}

type MarkersResponse struct {
	Fuel       []FuelMarker      `json:"fuel_stops"`
	Rest       []RestMarker      `json:"rest_periods"`
	Violations []ViolationMarker `json:"violations"`
}

type HOSSummaryResponse struct {
	TotalDriveHours     float64 `json:"total_drive_hours"`
	TotalMiles          float64 `json:"total_miles"`
	CycleHoursUsed      float64 `json:"cycle_hours_used"`
	RemainingDriveHours float64 `json:"remaining_drive_hours"`
	DaysSimulated       int     `json:"days_simulated"`
}

type PlanTripResponse struct {
	Trip       TripResponse       `json:"trip"`
	Route      RouteResponse      `json:"route"`
	TotalHours float64            `json:"total_hours"`
	TotalMiles float64            `json:"total_miles"`
	Markers    MarkersResponse    `json:"markers"`
	Summary    HOSSummaryResponse `json:"summary"`
}
