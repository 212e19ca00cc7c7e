package planner

import (
	"os"
	"testing"
	"time"

	"trip-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/plan_response.json")
	require.NoError(t, err)
	return b
}

func TestDecodePlan(t *testing.T) {
	plan, err := DecodePlan(loadFixture(t))
	require.NoError(t, err)

	assert.Equal(t, "17", plan.TripID)
	assert.Equal(t, 2.0, plan.TotalHours)
	assert.Equal(t, 100.0, plan.TotalMiles)

	require.Len(t, plan.Route.Points, 5)
	assert.Equal(t, domain.Coordinate{Lat: 33.45, Lon: -112.07}, plan.Route.Points[0])
	assert.Equal(t, domain.Coordinate{Lat: 32.22, Lon: -110.97}, plan.Route.Points[4])
	assert.InDelta(t, 100.0, plan.Route.TotalMiles, 1e-9)

	require.Len(t, plan.FuelStops, 1)
	assert.Equal(t, 50.0, plan.FuelStops[0].Mile)
	assert.Equal(t, 8, plan.FuelStops[0].ETA.Hour())

	require.Len(t, plan.RestPeriods, 2)
	assert.Nil(t, plan.RestPeriods[0].Mile)
	assert.Equal(t, 10*time.Hour, plan.RestPeriods[0].Duration())
	require.NotNil(t, plan.RestPeriods[1].Mile)
	assert.Equal(t, 80.0, *plan.RestPeriods[1].Mile)

	require.Len(t, plan.Violations, 1)
	assert.Equal(t, "CYCLE_LIMIT_EXCEEDED", plan.Violations[0].Type)
	assert.Nil(t, plan.Violations[0].Mile)
	require.NotNil(t, plan.Violations[0].Time)
	assert.Equal(t, time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC), *plan.Violations[0].Time)

	assert.Equal(t, 2, plan.Summary.DaysSimulated)
	assert.Equal(t, 71.5, plan.Summary.CycleHoursUsed)
}

func TestDecodePlanMissingRouteYieldsEmptyRoute(t *testing.T) {
	plan, err := DecodePlan([]byte(`{"route": null, "hos_sim": {"violations": [{"type": ""}]}}`))
	require.NoError(t, err)

	assert.True(t, plan.Route.Empty())
	assert.Equal(t, 0.0, plan.Route.TotalMiles)
	assert.Empty(t, plan.FuelStops)
	assert.Empty(t, plan.RestPeriods)
	require.Len(t, plan.Violations, 1)
	assert.Equal(t, "UNKNOWN", plan.Violations[0].Type)
}

func TestDecodePlanMissingSummaryDistance(t *testing.T) {
	body := `{"route": {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[1, 2], [3, 4]]}}}`

	plan, err := DecodePlan([]byte(body))
	require.NoError(t, err)

	require.Len(t, plan.Route.Points, 2)
	assert.Equal(t, domain.Coordinate{Lat: 2, Lon: 1}, plan.Route.Points[0])
	assert.Equal(t, 0.0, plan.Route.TotalMiles)
}

func TestDecodePlanMultiLineString(t *testing.T) {
	body := `{"route": {"type": "Feature", "properties": {"summary": {"distance": 1609.34}},
		"geometry": {"type": "MultiLineString", "coordinates": [[[0, 0], [0, 1]], [[0, 2], [0, 3]]]}}}`

	plan, err := DecodePlan([]byte(body))
	require.NoError(t, err)

	require.Len(t, plan.Route.Points, 4)
	assert.Equal(t, domain.Coordinate{Lat: 3, Lon: 0}, plan.Route.Points[3])
	assert.InDelta(t, 1.0, plan.Route.TotalMiles, 1e-9)
}

func TestDecodePlanErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"point geometry", `{"route": {"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [1, 2]}}}`},
		{"fuel stop without mile", `{"hos_sim": {"fuel_stops": [{"eta": "2026-01-01T08:00:00"}]}}`},
		{"bad fuel eta", `{"hos_sim": {"fuel_stops": [{"mile": 10, "eta": "tomorrow"}]}}`},
		{"bad rest start", `{"hos_sim": {"days": [{"events": [{"type": "OFF_DUTY", "start": "", "end": "2026-01-01T08:00:00"}]}]}}`},
		{"bad violation time", `{"hos_sim": {"violations": [{"type": "X", "time": "noon"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePlan([]byte(tt.body))
			require.Error(t, err)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-01-01T08:00:00", time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)},
		{"2026-01-01T08:00:00.500000", time.Date(2026, 1, 1, 8, 0, 0, 500000000, time.UTC)},
		{"2026-01-01T08:00:00Z", time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)},
		{"2026-01-01T10:00", time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestRawID(t *testing.T) {
	assert.Equal(t, "", rawID(nil))
	assert.Equal(t, "", rawID([]byte("null")))
	assert.Equal(t, "42", rawID([]byte("42")))
	assert.Equal(t, "abc", rawID([]byte(`"abc"`)))
}
