package planner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"trip-route-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// offDutyEvent is the duty status whose timeline entries are drawn as rest markers.
const offDutyEvent = "OFF_DUTY"

// unknownViolation replaces an empty violation type.
const unknownViolation = "UNKNOWN"

type planResponse struct {
	Trip       tripResponse    `json:"trip"`
	Route      json.RawMessage `json:"route"`
	TotalHours float64         `json:"total_hours"`
	TotalMiles float64         `json:"total_miles"`
	HOS        hosSimulation   `json:"hos_sim"`
}

type tripResponse struct {
	ID   json.RawMessage `json:"id"`
	Name string          `json:"name"`
}

type hosSimulation struct {
	Days       []hosDay        `json:"days"`
	Violations []violationJSON `json:"violations"`
	FuelStops  []fuelStopJSON  `json:"fuel_stops"`
	Summary    hosSummaryJSON  `json:"summary"`
}

type hosDay struct {
	Date   string          `json:"date"`
	Events []dutyEventJSON `json:"events"`
}

type dutyEventJSON struct {
	Type     string   `json:"type"`
	Duration float64  `json:"duration"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Note     *string  `json:"note"`
	Mile     *float64 `json:"mile"`
}

type violationJSON struct {
	Type string   `json:"type"`
	Time *string  `json:"time"`
	Note *string  `json:"note"`
	Mile *float64 `json:"mile"`
}

type fuelStopJSON struct {
	Mile *float64 `json:"mile"`
	ETA  string   `json:"eta"`
}

type hosSummaryJSON struct {
	TotalDriveHours     float64 `json:"total_drive_hours"`
	TotalMiles          float64 `json:"total_miles"`
	CycleHoursUsed      float64 `json:"cycle_hours_used"`
	RemainingDriveHours float64 `json:"remaining_drive_hours"`
	DaysSimulated       int     `json:"days_simulated"`
}

// DecodePlan parses a plan-route response body into a fully typed TripPlan.
func DecodePlan(body []byte) (*domain.TripPlan, error) {
	var pr planResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("decode plan response: %w", err)
	}
	return pr.toDomain()
}

func (pr planResponse) toDomain() (*domain.TripPlan, error) {
	route, err := parseRoute(pr.Route)
	if err != nil {
		return nil, fmt.Errorf("parse route: %w", err)
	}

	fuel, err := parseFuelStops(pr.HOS.FuelStops)
	if err != nil {
		return nil, err
	}

	rest, err := parseRestPeriods(pr.HOS.Days)
	if err != nil {
		return nil, err
	}

	violations, err := parseViolations(pr.HOS.Violations)
	if err != nil {
		return nil, err
	}

	s := pr.HOS.Summary
	return &domain.TripPlan{
		TripID:      rawID(pr.Trip.ID),
		Route:       route,
		TotalHours:  pr.TotalHours,
		TotalMiles:  pr.TotalMiles,
		FuelStops:   fuel,
		RestPeriods: rest,
		Violations:  violations,
		Summary: domain.HOSSummary{
			TotalDriveHours:     s.TotalDriveHours,
			TotalMiles:          s.TotalMiles,
			CycleHoursUsed:      s.CycleHoursUsed,
			RemainingDriveHours: s.RemainingDriveHours,
			DaysSimulated:       s.DaysSimulated,
		},
	}, nil
}

// parseRoute reads the GeoJSON route feature. A missing route or geometry
// yields an empty Route; a missing summary distance yields zero miles.
func parseRoute(raw json.RawMessage) (domain.Route, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.Route{Points: []domain.Coordinate{}}, nil
	}

	var f geojson.Feature
	if err := json.Unmarshal(raw, &f); err != nil {
		return domain.Route{}, fmt.Errorf("decode geojson feature: %w", err)
	}

	var line orb.LineString
	switch g := f.Geometry.(type) {
	case nil:
	case orb.LineString:
		line = g
	case orb.MultiLineString:
		for _, ls := range g {
			line = append(line, ls...)
		}
	default:
		return domain.Route{}, fmt.Errorf("unsupported route geometry %q", f.Geometry.GeoJSONType())
	}

	lonLat := make([][2]float64, 0, len(line))
	for _, p := range line {
		lonLat = append(lonLat, [2]float64{p.Lon(), p.Lat()})
	}

	return domain.NewRoute(lonLat, summaryDistance(f.Properties)), nil
}

func summaryDistance(props geojson.Properties) float64 {
	summary, ok := props["summary"].(map[string]interface{})
	if !ok {
		return 0
	}
	meters, ok := summary["distance"].(float64)
	if !ok || meters < 0 {
		return 0
	}
	return meters
}

func parseFuelStops(in []fuelStopJSON) ([]domain.FuelStop, error) {
	out := make([]domain.FuelStop, 0, len(in))
	for i, f := range in {
		if f.Mile == nil {
			return nil, fmt.Errorf("fuel stop %d: mile is required", i+1)
		}
		eta, err := parseTimestamp(f.ETA)
		if err != nil {
			return nil, fmt.Errorf("fuel stop %d: eta: %w", i+1, err)
		}
		out = append(out, domain.FuelStop{Mile: *f.Mile, ETA: eta})
	}
	return out, nil
}

// parseRestPeriods flattens the daily timelines into the OFF_DUTY entries,
// in day then event order.
func parseRestPeriods(days []hosDay) ([]domain.RestPeriod, error) {
	out := []domain.RestPeriod{}
	for di, day := range days {
		for ei, ev := range day.Events {
			if ev.Type != offDutyEvent {
				continue
			}
			start, err := parseTimestamp(ev.Start)
			if err != nil {
				return nil, fmt.Errorf("day %d event %d: start: %w", di+1, ei+1, err)
			}
			end, err := parseTimestamp(ev.End)
			if err != nil {
				return nil, fmt.Errorf("day %d event %d: end: %w", di+1, ei+1, err)
			}
			out = append(out, domain.RestPeriod{
				Mile:  ev.Mile,
				Start: start,
				End:   end,
				Note:  ev.Note,
			})
		}
	}
	return out, nil
}

func parseViolations(in []violationJSON) ([]domain.Violation, error) {
	out := make([]domain.Violation, 0, len(in))
	for i, v := range in {
		typ := strings.TrimSpace(v.Type)
		if typ == "" {
			typ = unknownViolation
		}

		var at *time.Time
		if v.Time != nil {
			t, err := parseTimestamp(*v.Time)
			if err != nil {
				return nil, fmt.Errorf("violation %d: time: %w", i+1, err)
			}
			at = &t
		}

		out = append(out, domain.Violation{
			Mile: v.Mile,
			Type: typ,
			Note: v.Note,
			Time: at,
		})
	}
	return out, nil
}

// The simulator emits ISO-8601 timestamps, with or without a UTC offset.
// Timestamps without an offset are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// rawID renders a numeric or string trip id as a string.
func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
