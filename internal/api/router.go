package api

import (
	"net/http"

	"trip-route-service/internal/api/handlers"
	"trip-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// repo may be nil, in which case trips are not stored and /trips returns 503.
func NewRouter(planner ports.TripPlanner, repo ports.TripRepository) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Planner: planner,
		Repo:    repo,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trips", tripHandler.List)
	mux.HandleFunc("/trips/plan", tripHandler.Plan)
	mux.HandleFunc("/distance/estimate", handlers.Estimate)

	return requestIDMiddleware(loggingMiddleware(mux))
}
