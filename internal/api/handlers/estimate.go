package handlers

import (
	"net/http"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/services"
)

// Estimate returns the great-circle distance between two points, used to
// pre-fill trip mileage before a plan has been computed.
func Estimate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var body dto.EstimateRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	from, err := dto.ParseCoordinate("from", body.From)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	to, err := dto.ParseCoordinate("to", body.To)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, dto.EstimateResponse{Miles: services.DistanceMiles(from, to)})
}
