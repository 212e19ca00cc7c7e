package domain

// MetersPerMile converts upstream route distances (meters) to miles.
const MetersPerMile = 1609.34

// Represents the driving route returned by the plan-route service.
// Points are in route-following order: the first point is the origin and
// the last point is the destination. A Route is built once per planning
// result and never mutated afterwards.
type Route struct {
	Points     []Coordinate
	TotalMiles float64
}

// NewRoute converts GeoJSON [lon, lat] positions and a distance in meters
// into a Route.
func NewRoute(lonLat [][2]float64, distanceMeters float64) Route {
	points := make([]Coordinate, 0, len(lonLat))
	for _, p := range lonLat {
		points = append(points, FromLonLat(p[0], p[1]))
	}

	return Route{
		Points:     points,
		TotalMiles: distanceMeters / MetersPerMile,
	}
}

func (r Route) Empty() bool { return len(r.Points) == 0 }
