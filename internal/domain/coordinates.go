package domain

import "fmt"

// Immutable geographic coordinates in degrees (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lat, lng] for the plan-route service and map markers.
func (c Coordinate) LatLng() []float64 { return []float64{c.Lat, c.Lon} }

// Build a Coordinate from a GeoJSON-style [lon, lat] pair.
func FromLonLat(lon, lat float64) Coordinate { return Coordinate{Lat: lat, Lon: lon} }

// Validate reports whether the coordinate lies within the WGS84 ranges.
// The placement core accepts any finite value; this is for request boundaries.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}
