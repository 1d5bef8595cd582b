package entity

import "math"

// Coordinate is an immutable WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both components are finite numbers. GPS glitches
// occasionally surface as NaN or infinite values and must be filtered
// entry-locally, never propagated into the ranked output.
func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Latitude) && !math.IsInf(c.Latitude, 0) &&
		!math.IsNaN(c.Longitude) && !math.IsInf(c.Longitude, 0)
}
