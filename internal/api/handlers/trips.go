package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"

	"github.com/rs/zerolog/log"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type TripHandler struct {
	Planner ports.TripPlanner
	// Repo may be nil when the service runs without a database.
	Repo ports.TripRepository
}

// Plan requests a route and HOS schedule from the plan-route service and
// returns the route with every fuel, rest and violation marker placed on it.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var body dto.PlanTripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	req, err := body.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	planned, err := services.PlanTrip(r.Context(), req, h.Planner, h.Repo)

	var rejected *ports.PlannerRejectedError
	switch {
	case errors.Is(err, domain.ErrInvalidTripRequest):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.As(err, &rejected):
		log.Warn().Err(err).Msg("plan trip rejected upstream")
		writeError(w, r, http.StatusBadGateway, rejected.Message)
		return
	case errors.Is(err, ports.ErrPlannerRejected):
		log.Warn().Err(err).Msg("plan trip rejected upstream")
		writeError(w, r, http.StatusBadGateway, "plan-route service rejected the request")
		return
	case err != nil:
		log.Error().Err(err).Msg("plan trip failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanTripResponse(planned))
}

// List returns recently planned trips, newest first.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "trip history is not configured")
		return
	}

	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	trips, err := services.ListTrips(r.Context(), h.Repo, limit)
	if err != nil {
		log.Error().Err(err).Msg("list trips failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.NewTripResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}
