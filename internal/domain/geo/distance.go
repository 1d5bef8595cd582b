package geo

import (
	"fmt"
	"math"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
)

// EarthRadiusMeters is the mean Earth radius of the spherical approximation.
const EarthRadiusMeters = 6371008.8

// Distance returns the great-circle distance between two coordinates in
// meters, using the haversine formula. Symmetric, always finite and
// non-negative for finite inputs; NaN inputs propagate to NaN.
func Distance(a, b entity.Coordinate) float64 {
	φ1 := a.Latitude * math.Pi / 180.0
	φ2 := b.Latitude * math.Pi / 180.0
	dφ := (b.Latitude - a.Latitude) * math.Pi / 180.0
	dλ := (b.Longitude - a.Longitude) * math.Pi / 180.0

	sinDφ := math.Sin(dφ / 2)
	sinDλ := math.Sin(dλ / 2)

	h := sinDφ*sinDφ + math.Cos(φ1)*math.Cos(φ2)*sinDλ*sinDλ
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

// Within reports whether point lies at most radiusMeters from center. The
// boundary is inclusive.
func Within(center, point entity.Coordinate, radiusMeters float64) bool {
	return Distance(center, point) <= radiusMeters
}

// FormatDistance renders a distance for display: under a kilometer as whole
// meters ("111 m"), otherwise with one decimal ("1.1 km").
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000.0)
}
