// Package ranking blends proximity, recency of activity and online status
// into a single ascending-priority score: lower means closer to the top of
// the nearby list. The blend deliberately lets a farther but recently
// active, online friend outrank a slightly closer stale offline one.
package ranking

// Weights are the relative contributions of the three sub-scores. They are
// expected to sum to 1 so the total stays in [0, 1].
type Weights struct {
	Proximity float64
	Recency   float64
	Status    float64
}

func DefaultWeights() Weights {
	return Weights{Proximity: 0.5, Recency: 0.3, Status: 0.2}
}

type Scorer struct {
	weights         Weights
	radiusMeters    float64
	recencyWindowMs int64
}

func NewScorer(w Weights, radiusMeters float64, recencyWindowMs int64) *Scorer {
	return &Scorer{weights: w, radiusMeters: radiusMeters, recencyWindowMs: recencyWindowMs}
}

// Score computes the blended rank score. Each sub-score is normalized and
// clamped to [0, 1] before weighting. Pure and deterministic.
func (s *Scorer) Score(distanceMeters float64, lastActiveAtMillis int64, isOnline bool, nowMillis int64) float32 {
	proximity := clamp01(distanceMeters / s.radiusMeters)
	recency := clamp01(float64(nowMillis-lastActiveAtMillis) / float64(s.recencyWindowMs))
	status := 1.0
	if isOnline {
		status = 0.0
	}
	total := s.weights.Proximity*proximity + s.weights.Recency*recency + s.weights.Status*status
	return float32(total)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
