package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
)

func detectorResults(dists ...float64) []entity.NearbyFriendResult {
	out := make([]entity.NearbyFriendResult, len(dists))
	for i, d := range dists {
		out[i] = entity.NearbyFriendResult{
			ID:             string(rune('a' + i)),
			DistanceMeters: d,
			RankScore:      float32(d / 10000 * 0.5),
		}
	}
	return out
}

func TestChangeDetector_SuppressesSubToleranceJitter(t *testing.T) {
	d := NewChangeDetector(DefaultDistanceTolerance, DefaultScoreTolerance)

	prev := detectorResults(500.0, 2000.0)
	next := detectorResults(500.4, 2000.0)

	assert.False(t, d.ShouldEmit(prev, next))
}

func TestChangeDetector_EmitsOnMeaningfulMove(t *testing.T) {
	d := NewChangeDetector(DefaultDistanceTolerance, DefaultScoreTolerance)

	prev := detectorResults(500.0, 2000.0)
	next := detectorResults(501.5, 2000.0)

	assert.True(t, d.ShouldEmit(prev, next))
}

func TestChangeDetector_SizeChangeAlwaysEmits(t *testing.T) {
	d := NewChangeDetector(DefaultDistanceTolerance, DefaultScoreTolerance)

	assert.True(t, d.ShouldEmit(detectorResults(500.0), detectorResults(500.0, 2000.0)))
	assert.True(t, d.ShouldEmit(detectorResults(500.0, 2000.0), detectorResults(500.0)))
	assert.True(t, d.ShouldEmit(nil, detectorResults(500.0)))
}

func TestChangeDetector_MembershipChangeEmits(t *testing.T) {
	d := NewChangeDetector(DefaultDistanceTolerance, DefaultScoreTolerance)

	prev := detectorResults(500.0, 2000.0)
	next := detectorResults(500.0, 2000.0)
	next[1].ID = "z"

	assert.True(t, d.ShouldEmit(prev, next))
}

func TestChangeDetector_ScoreShiftEmits(t *testing.T) {
	d := NewChangeDetector(DefaultDistanceTolerance, DefaultScoreTolerance)

	prev := detectorResults(500.0)
	next := detectorResults(500.0)
	// Distance unchanged, but the friend went offline: score jumps by the
	// status weight, well past tolerance.
	next[0].RankScore = prev[0].RankScore + 0.2

	assert.True(t, d.ShouldEmit(prev, next))
}

func TestChangeDetector_IdenticalSetsSuppressed(t *testing.T) {
	d := NewChangeDetector(DefaultDistanceTolerance, DefaultScoreTolerance)

	set := detectorResults(500.0, 2000.0, 7500.0)

	assert.False(t, d.ShouldEmit(set, set))
	assert.False(t, d.ShouldEmit(nil, nil))
}
