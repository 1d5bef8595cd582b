package engine

import "github.com/DioGolang/GoNearby/internal/domain/ranking"

// Config carries the tuning constants of the proximity engine. Zero values
// are replaced by the documented defaults in Normalize.
type Config struct {
	GeoFilterRadiusMeters   float64
	MovementThresholdMeters float64
	TimeThresholdMs         int64
	DistanceToleranceMeters float64
	ScoreTolerance          float64
	MaxTrackedFriends       int
	RecencyWindowMs         int64
	Weights                 ranking.Weights
}

const (
	DefaultGeoFilterRadiusMeters   = 10000.0
	DefaultMovementThresholdMeters = 20.0
	DefaultTimeThresholdMs         = 10000
	DefaultDistanceTolerance       = 1.0
	DefaultScoreTolerance          = 0.01
	DefaultMaxTrackedFriends       = 1000
	DefaultRecencyWindowMs         = 3600000
)

func DefaultConfig() Config {
	return Config{
		GeoFilterRadiusMeters:   DefaultGeoFilterRadiusMeters,
		MovementThresholdMeters: DefaultMovementThresholdMeters,
		TimeThresholdMs:         DefaultTimeThresholdMs,
		DistanceToleranceMeters: DefaultDistanceTolerance,
		ScoreTolerance:          DefaultScoreTolerance,
		MaxTrackedFriends:       DefaultMaxTrackedFriends,
		RecencyWindowMs:         DefaultRecencyWindowMs,
		Weights:                 ranking.DefaultWeights(),
	}
}

// Normalize fills unset fields with defaults so a partially populated
// Config stays usable.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.GeoFilterRadiusMeters <= 0 {
		c.GeoFilterRadiusMeters = d.GeoFilterRadiusMeters
	}
	if c.MovementThresholdMeters <= 0 {
		c.MovementThresholdMeters = d.MovementThresholdMeters
	}
	if c.TimeThresholdMs <= 0 {
		c.TimeThresholdMs = d.TimeThresholdMs
	}
	if c.DistanceToleranceMeters <= 0 {
		c.DistanceToleranceMeters = d.DistanceToleranceMeters
	}
	if c.ScoreTolerance <= 0 {
		c.ScoreTolerance = d.ScoreTolerance
	}
	if c.MaxTrackedFriends <= 0 {
		c.MaxTrackedFriends = d.MaxTrackedFriends
	}
	if c.RecencyWindowMs <= 0 {
		c.RecencyWindowMs = d.RecencyWindowMs
	}
	if c.Weights == (ranking.Weights{}) {
		c.Weights = d.Weights
	}
	return c
}
