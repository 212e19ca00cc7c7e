package services

import (
	"math"

	"trip-route-service/internal/domain"
)

// EarthRadiusMiles is the mean Earth radius used by the great-circle estimate.
const EarthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle (haversine) distance between a and b.
//
// It is used to pre-populate trip mileage before the plan-route service has
// computed a road distance, so it always underestimates driving distance.
// Inputs are not range-checked.
func DistanceMiles(a, b domain.Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// Rounding can push h marginally above 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMiles * math.Asin(math.Sqrt(h))
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
