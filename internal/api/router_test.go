package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"trip-route-service/internal/adapters/planner"
	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTripRepo struct {
	mu    sync.Mutex
	trips []domain.TripRecord
}

func (m *memoryTripRepo) SaveTrip(ctx context.Context, rec domain.TripRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips = append([]domain.TripRecord{rec}, m.trips...)
	return nil
}

func (m *memoryTripRepo) ListTrips(ctx context.Context, limit int) ([]domain.TripRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.trips) {
		limit = len(m.trips)
	}
	return append([]domain.TripRecord(nil), m.trips[:limit]...), nil
}

func samplePlan() *domain.TripPlan {
	points := make([]domain.Coordinate, 5)
	for i := range points {
		points[i] = domain.Coordinate{Lat: 33 - float64(i)*0.25, Lon: -112 + float64(i)*0.25}
	}
	mile := 75.0
	eta := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	return &domain.TripPlan{
		TripID:     "17",
		Route:      domain.Route{Points: points, TotalMiles: 100},
		TotalHours: 2,
		TotalMiles: 100,
		FuelStops:  []domain.FuelStop{{Mile: 50, ETA: eta}},
		RestPeriods: []domain.RestPeriod{
			{Start: eta, End: eta.Add(10 * time.Hour)},
		},
		Violations: []domain.Violation{
			{Type: "CYCLE_LIMIT_EXCEEDED"},
			{Type: "INCOMPLETE_ROUTE", Mile: &mile},
		},
		Summary: domain.HOSSummary{DaysSimulated: 1},
	}
}

const planBody = `{
	"name": "Phoenix to Tucson",
	"current": [33.45, -112.07],
	"pickup": [33.42, -111.94],
	"dropoff": [32.22, -110.97],
	"start_time": "2026-01-01T08:00",
	"cycle_hours_used": 12.5
}`

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := NewRouter(planner.NewMockPlanner(samplePlan(), nil), nil)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := NewRouter(planner.NewMockPlanner(samplePlan(), nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", rec.Header().Get("X-Request-ID"))
}

func TestPlanTrip(t *testing.T) {
	mock := planner.NewMockPlanner(samplePlan(), nil)
	repo := &memoryTripRepo{}
	h := NewRouter(mock, repo)

	rec := do(t, h, http.MethodPost, "/trips/plan", planBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.PlanTripResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Len(t, res.Trip.ID, 36)
	assert.Equal(t, "17", res.Trip.UpstreamTripID)
	assert.Equal(t, []float64{33.42, -111.94}, res.Trip.Pickup)
	assert.Len(t, res.Route.Points, 5)
	assert.Equal(t, []float64{33, -112}, res.Route.Points[0])

	require.Len(t, res.Markers.Fuel, 1)
	assert.Equal(t, 32.5, res.Markers.Fuel[0].Latitude)
	assert.False(t, res.Markers.Fuel[0].EstimatedMile)

	require.Len(t, res.Markers.Rest, 1)
	assert.Equal(t, 50.0, res.Markers.Rest[0].Mile)
	assert.True(t, res.Markers.Rest[0].EstimatedMile)

	require.Len(t, res.Markers.Violations, 2)
	assert.InDelta(t, 100.0/3, res.Markers.Violations[0].Mile, 1e-9)
	assert.Equal(t, 75.0, res.Markers.Violations[1].Mile)
	assert.Equal(t, "INCOMPLETE_ROUTE", res.Markers.Violations[1].Type)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), reqs[0].StartTime)
	require.NotNil(t, reqs[0].TotalMiles)

	require.Len(t, repo.trips, 1)
	assert.Equal(t, res.Trip.ID, repo.trips[0].ID)
}

func TestPlanTripBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{`, "invalid json body"},
		{"unknown field", `{"colour": "red"}`, "invalid json body"},
		{"two objects", `{} {}`, "only one JSON object"},
		{"short coordinate", strings.Replace(planBody, "[33.45, -112.07]", "[33.45]", 1), "current must be"},
		{"bad start time", strings.Replace(planBody, "2026-01-01T08:00", "yesterday", 1), "start_time"},
		{"latitude out of range", strings.Replace(planBody, "[32.22, -110.97]", "[132.22, -110.97]", 1), "dropoff"},
		{"cycle hours over limit", strings.Replace(planBody, "12.5", "80", 1), "cycle_hours_used"},
	}

	h := NewRouter(planner.NewMockPlanner(samplePlan(), nil), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/trips/plan", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestPlanTripUpstreamErrors(t *testing.T) {
	rejected := NewRouter(planner.NewMockPlanner(nil, &ports.PlannerRejectedError{Message: "Routing failed"}), nil)
	rec := do(t, rejected, http.MethodPost, "/trips/plan", planBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Routing failed"}`, rec.Body.String())

	bare := NewRouter(planner.NewMockPlanner(nil, ports.ErrPlannerRejected), nil)
	rec = do(t, bare, http.MethodPost, "/trips/plan", planBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "plan trip:")

	broken := NewRouter(planner.NewMockPlanner(nil, fmt.Errorf("dial tcp: connection refused")), nil)
	rec = do(t, broken, http.MethodPost, "/trips/plan", planBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestListTrips(t *testing.T) {
	t.Run("no repository", func(t *testing.T) {
		h := NewRouter(planner.NewMockPlanner(samplePlan(), nil), nil)
		rec := do(t, h, http.MethodGet, "/trips", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("recent trips", func(t *testing.T) {
		repo := &memoryTripRepo{}
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.SaveTrip(context.Background(), domain.TripRecord{ID: fmt.Sprint(i)}))
		}
		h := NewRouter(planner.NewMockPlanner(samplePlan(), nil), repo)

		rec := do(t, h, http.MethodGet, "/trips?limit=2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var res dto.ListTripsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res.Trips, 2)
		assert.Equal(t, "2", res.Trips[0].ID)
	})

	t.Run("bad limit", func(t *testing.T) {
		h := NewRouter(planner.NewMockPlanner(samplePlan(), nil), &memoryTripRepo{})
		for _, q := range []string{"0", "101", "ten"} {
			rec := do(t, h, http.MethodGet, "/trips?limit="+q, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})
}

func TestEstimate(t *testing.T) {
	h := NewRouter(planner.NewMockPlanner(samplePlan(), nil), nil)

	rec := do(t, h, http.MethodPost, "/distance/estimate", `{"from": [0, 0], "to": [1, 0]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.EstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.InDelta(t, 69.0, res.Miles, 1)

	rec = do(t, h, http.MethodPost, "/distance/estimate", `{"from": [0], "to": [1, 0]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/distance/estimate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
