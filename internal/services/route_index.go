package services

import (
	"math"

	"trip-route-service/internal/domain"
)

// minRouteMiles guards the mile-to-percent conversion against zero-length routes.
const minRouteMiles = 1e-9

// RouteIndex answers "which route point corresponds to mile M".
//
// Placement is index-proportional: mile M maps to the point at the same
// fraction of the polyline's point count. This matches the upstream renderer
// and is only accurate when points are roughly evenly spaced by distance.
// RouteIndex never mutates the route and is safe for concurrent use.
type RouteIndex struct {
	points     []domain.Coordinate
	totalMiles float64
}

func NewRouteIndex(route domain.Route) *RouteIndex {
	return &RouteIndex{
		points:     route.Points,
		totalMiles: route.TotalMiles,
	}
}

// TotalMiles returns the route length as received, unclamped.
func (ri *RouteIndex) TotalMiles() float64 { return ri.totalMiles }

// Len returns the number of route points.
func (ri *RouteIndex) Len() int { return len(ri.points) }

// LocateAtMile returns the route point for the given mile, and false when the
// route has no points.
func (ri *RouteIndex) LocateAtMile(mile float64) (domain.Coordinate, bool) {
	if len(ri.points) == 0 {
		return domain.Coordinate{}, false
	}

	return ri.points[ri.indexAtMile(mile)], true
}

func (ri *RouteIndex) indexAtMile(mile float64) int {
	if math.IsNaN(mile) || mile < 0 {
		mile = 0
	}

	total := ri.totalMiles
	if math.IsNaN(total) || total < minRouteMiles {
		total = minRouteMiles
	}

	percent := math.Min(mile/total, 1.0)
	if math.IsNaN(percent) {
		// Inf/Inf
		percent = 0
	}
	last := len(ri.points) - 1
	index := int(math.Floor(percent * float64(last)))

	if index < 0 {
		return 0
	}
	if index > last {
		return last
	}
	return index
}
