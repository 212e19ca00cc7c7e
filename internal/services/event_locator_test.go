package services

import (
	"math"
	"testing"
	"time"

	"trip-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestLocateEventsSynthesizesMissingMiles(t *testing.T) {
	route := linearRoute(301, 100)
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	rests := []domain.RestPeriod{
		{Start: start, End: start.Add(10 * time.Hour)},
		{Start: start.Add(24 * time.Hour), End: start.Add(34 * time.Hour)},
	}

	located := LocateEvents(route, rests)
	require.Len(t, located, 2)

	assert.InDelta(t, 100.0/3, located[0].Mile, 1e-9)
	assert.InDelta(t, 200.0/3, located[1].Mile, 1e-9)
	assert.Less(t, located[0].Mile, located[1].Mile)

	// floor(1/3 * 300) and floor(2/3 * 300), allowing for rounding just below.
	assert.Contains(t, []domain.Coordinate{route.Points[99], route.Points[100]}, located[0].Position)
	assert.Contains(t, []domain.Coordinate{route.Points[199], route.Points[200]}, located[1].Position)

	assert.Equal(t, rests[0], located[0].Event)
	assert.Equal(t, rests[1], located[1].Event)
}

func TestSynthesizedMilesAreStrictlyInterior(t *testing.T) {
	const total = 742.5

	for n := 1; n <= 25; n++ {
		prev := 0.0
		for i := 0; i < n; i++ {
			m := SynthesizedMile(total, i, n)
			assert.Greater(t, m, prev, "n=%d i=%d", n, i)
			assert.Less(t, m, total, "n=%d i=%d", n, i)
			assert.InDelta(t, total*float64(i+1)/float64(n+1), m, 1e-9)
			prev = m
		}
	}
}

func TestLocateEventsFallbackUsesBatchPosition(t *testing.T) {
	route := linearRoute(5, 100)

	violations := []domain.Violation{
		{Type: "CYCLE_LIMIT_EXCEEDED", Mile: ptr(0.0)},
		{Type: "CYCLE_LIMIT_EXCEEDED"},
		{Type: "INCOMPLETE_ROUTE", Mile: ptr(100.0)},
	}

	located := LocateEvents(route, violations)
	require.Len(t, located, 3)

	assert.Equal(t, 0.0, located[0].Mile)
	assert.Equal(t, route.Points[0], located[0].Position)

	// Position 1 of 3 lands at 2/4 of the route even though it is the only
	// event without a mile.
	assert.InDelta(t, 50.0, located[1].Mile, 1e-9)
	assert.Equal(t, route.Points[2], located[1].Position)

	assert.Equal(t, 100.0, located[2].Mile)
	assert.Equal(t, route.Points[4], located[2].Position)
}

func TestLocateEventsClampsExplicitMiles(t *testing.T) {
	route := linearRoute(4, 60)

	fuel := []domain.FuelStop{
		{Mile: -25},
		{Mile: 1000},
		{Mile: math.NaN()},
		{Mile: math.Inf(1)},
	}

	located := LocateEvents(route, fuel)
	require.Len(t, located, 4)

	assert.Equal(t, 0.0, located[0].Mile)
	assert.Equal(t, route.Points[0], located[0].Position)
	assert.Equal(t, 60.0, located[1].Mile)
	assert.Equal(t, route.Points[3], located[1].Position)
	assert.Equal(t, 0.0, located[2].Mile)
	assert.Equal(t, 60.0, located[3].Mile)
	assert.Equal(t, route.Points[3], located[3].Position)
}

func TestLocateEventsEmptyRoute(t *testing.T) {
	route := domain.Route{TotalMiles: 100}

	assert.Empty(t, LocateEvents(route, []domain.FuelStop{{Mile: 10}}))
	assert.Empty(t, LocateEvents(route, []domain.RestPeriod{{}}))
	assert.Empty(t, LocateEvents(route, []domain.Violation{{Type: "X"}}))
	assert.NotNil(t, LocateEvents(route, []domain.Violation{{Type: "X"}}))
}

func TestLocateEventsZeroLengthRoute(t *testing.T) {
	route := linearRoute(3, 0)

	located := LocateEvents(route, []domain.RestPeriod{{}, {Mile: ptr(12.0)}, {}})
	require.Len(t, located, 3)

	for _, l := range located {
		assert.Equal(t, 0.0, l.Mile)
		assert.Equal(t, route.Points[0], l.Position)
		assert.False(t, math.IsNaN(l.Position.Lat) || math.IsInf(l.Position.Lat, 0))
		assert.False(t, math.IsNaN(l.Position.Lon) || math.IsInf(l.Position.Lon, 0))
	}
}

func TestLocateEventsIsDeterministic(t *testing.T) {
	route := linearRoute(50, 812)
	events := []domain.Violation{{Type: "A"}, {Type: "B", Mile: ptr(400.0)}, {Type: "C"}}

	first := LocateEvents(route, events)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, LocateEvents(route, events))
	}
}

func TestPlaceTripEvents(t *testing.T) {
	route := linearRoute(11, 100)
	plan := &domain.TripPlan{
		Route:       route,
		FuelStops:   []domain.FuelStop{{Mile: 50}},
		RestPeriods: []domain.RestPeriod{{}, {}, {}},
		Violations:  []domain.Violation{{Type: "CYCLE_LIMIT_EXCEEDED"}},
	}

	placement := PlaceTripEvents(plan)

	require.Len(t, placement.Fuel, 1)
	assert.Equal(t, route.Points[5], placement.Fuel[0].Position)

	require.Len(t, placement.Rest, 3)
	assert.InDelta(t, 25.0, placement.Rest[0].Mile, 1e-9)
	assert.InDelta(t, 50.0, placement.Rest[1].Mile, 1e-9)
	assert.InDelta(t, 75.0, placement.Rest[2].Mile, 1e-9)

	require.Len(t, placement.Violations, 1)
	assert.InDelta(t, 50.0, placement.Violations[0].Mile, 1e-9)
	assert.Equal(t, route.Points[5], placement.Violations[0].Position)
}

func TestPlaceTripEventsNilPlan(t *testing.T) {
	placement := PlaceTripEvents(nil)
	assert.Empty(t, placement.Fuel)
	assert.Empty(t, placement.Rest)
	assert.Empty(t, placement.Violations)
}
