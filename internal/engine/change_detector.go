package engine

import (
	"math"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
)

// ChangeDetector suppresses emissions whose difference from the previous
// one is below tolerance, so the consumer does not re-render on
// imperceptible GPS jitter. A size change or a membership/order change
// always emits.
type ChangeDetector struct {
	distanceTolerance float64
	scoreTolerance    float64
}

func NewChangeDetector(distanceToleranceMeters, scoreTolerance float64) *ChangeDetector {
	return &ChangeDetector{distanceTolerance: distanceToleranceMeters, scoreTolerance: scoreTolerance}
}

// ShouldEmit compares the candidate against the previously emitted set.
func (d *ChangeDetector) ShouldEmit(previous, candidate []entity.NearbyFriendResult) bool {
	if len(previous) != len(candidate) {
		return true
	}
	for i := range candidate {
		prev, next := &previous[i], &candidate[i]
		if prev.ID != next.ID {
			return true
		}
		if math.Abs(next.DistanceMeters-prev.DistanceMeters) >= d.distanceTolerance {
			return true
		}
		if math.Abs(float64(next.RankScore-prev.RankScore)) >= d.scoreTolerance {
			return true
		}
	}
	return false
}
