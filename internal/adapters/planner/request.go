package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"trip-route-service/internal/domain"
)

// startTimeLayout matches what the plan-route service accepts for start_time.
const startTimeLayout = "2006-01-02T15:04:05"

type planRequest struct {
	Current        []float64 `json:"current"`
	Pickup         []float64 `json:"pickup"`
	Dropoff        []float64 `json:"dropoff"`
	StartTime      string    `json:"start_time"`
	CycleHoursUsed float64   `json:"cycle_hours_used"`
	Name           string    `json:"name"`
	TotalMiles     *float64  `json:"total_miles,omitempty"`
}

func newPlanRequest(req domain.TripRequest) planRequest {
	return planRequest{
		Current:        req.Current.LatLng(),
		Pickup:         req.Pickup.LatLng(),
		Dropoff:        req.Dropoff.LatLng(),
		StartTime:      req.StartTime.UTC().Format(startTimeLayout),
		CycleHoursUsed: req.CycleHoursUsed,
		Name:           strings.TrimSpace(req.Name),
		TotalMiles:     req.TotalMiles,
	}
}

// Fingerprint derives the plan cache key for a request. Coordinates are
// rounded to 1e-6 degrees and start times to the second so equivalent requests
// share a key.
func Fingerprint(req domain.TripRequest) (string, error) {
	pr := newPlanRequest(req)
	for _, c := range [][]float64{pr.Current, pr.Pickup, pr.Dropoff} {
		for i := range c {
			c[i] = math.Round(c[i]*1e6) / 1e6
		}
	}
	pr.StartTime = req.StartTime.UTC().Truncate(time.Second).Format(startTimeLayout)

	b, err := json.Marshal(pr)
	if err != nil {
		return "", fmt.Errorf("fingerprint plan request: %w", err)
	}

	sum := sha256.Sum256(b)
	return "plan:" + hex.EncodeToString(sum[:]), nil
}
