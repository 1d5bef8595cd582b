package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
)

func TestDistance_KnownPairs(t *testing.T) {
	tests := []struct {
		name     string
		a, b     entity.Coordinate
		expected float64 // meters
	}{
		{"Same point", entity.Coordinate{Latitude: 10, Longitude: 20}, entity.Coordinate{Latitude: 10, Longitude: 20}, 0},
		{"One degree of latitude", entity.Coordinate{}, entity.Coordinate{Latitude: 1}, 111195},
		{"Half kilometer north", entity.Coordinate{}, entity.Coordinate{Latitude: 0.0045}, 500.4},
		{"Paris to London", entity.Coordinate{Latitude: 48.8566, Longitude: 2.3522}, entity.Coordinate{Latitude: 51.5074, Longitude: -0.1278}, 343_900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)

			if tt.expected == 0 {
				assert.InDelta(t, 0, got, 0.001)
				return
			}
			// GPS-grade tolerance: 0.5%
			assert.InEpsilon(t, tt.expected, got, 0.005)
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := entity.Coordinate{Latitude: -23.5505, Longitude: -46.6333}
	b := entity.Coordinate{Latitude: 40.7128, Longitude: -74.0060}

	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistance_NaNPropagates(t *testing.T) {
	a := entity.Coordinate{Latitude: math.NaN(), Longitude: 0}
	b := entity.Coordinate{Latitude: 0, Longitude: 0}

	assert.True(t, math.IsNaN(Distance(a, b)))
}

func TestWithin_BoundaryIsInclusive(t *testing.T) {
	center := entity.Coordinate{}
	point := entity.Coordinate{Latitude: 0.0045}
	d := Distance(center, point)

	assert.True(t, Within(center, point, d))
	assert.False(t, Within(center, point, d-0.01))
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name     string
		meters   float64
		expected string
	}{
		{"Whole meters under a kilometer", 111.4, "111 m"},
		{"Rounds to nearest meter", 499.6, "500 m"},
		{"Just under a kilometer", 999.0, "999 m"},
		{"Exactly one kilometer", 1000.0, "1.0 km"},
		{"Two kilometers", 2001.5, "2.0 km"},
		{"Edge of the default radius", 10000.0, "10.0 km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDistance(tt.meters))
		})
	}
}
