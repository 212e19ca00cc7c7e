package planner

import (
	"context"
	"errors"
	"sync"

	"trip-route-service/internal/domain"
)

// MockPlanner returns a fixed plan (or error) and records the requests it saw.
type MockPlanner struct {
	mu       sync.Mutex
	plan     *domain.TripPlan
	err      error
	requests []domain.TripRequest
}

func NewMockPlanner(plan *domain.TripPlan, err error) *MockPlanner {
	return &MockPlanner{plan: plan, err: err}
}

func (m *MockPlanner) PlanTrip(ctx context.Context, req domain.TripRequest) (*domain.TripPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.plan == nil {
		return nil, errors.New("mock planner: no plan configured")
	}
	return m.plan, nil
}

// Requests returns a copy of the requests received so far.
func (m *MockPlanner) Requests() []domain.TripRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.TripRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
