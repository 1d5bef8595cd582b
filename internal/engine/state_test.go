package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/internal/domain/ranking"
)

const testNowMillis = int64(1_700_000_000_000)

func newTestScorer(cfg Config) *ranking.Scorer {
	return ranking.NewScorer(cfg.Weights, cfg.GeoFilterRadiusMeters, cfg.RecencyWindowMs)
}

func friendAt(id string, latMeters float64) entity.FriendSnapshot {
	return entity.FriendSnapshot{
		ID:          id,
		DisplayName: id,
		Coordinate: &entity.Coordinate{
			Latitude: latDegreesForMeters(latMeters),
		},
		IsOnline:           true,
		LastActiveAtMillis: testNowMillis,
	}
}

func originSample() entity.UserLocationSample {
	return entity.UserLocationSample{Coordinate: entity.Coordinate{}, CapturedAtMillis: testNowMillis}
}

func TestRecompute_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	scorer := newTestScorer(cfg)
	roster := []entity.FriendSnapshot{
		friendAt("c", 300), friendAt("a", 100), friendAt("b", 200),
	}

	_, first := Recompute(cfg, scorer, roster, originSample(), 1, testNowMillis)
	_, second := Recompute(cfg, scorer, roster, originSample(), 1, testNowMillis)

	require.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b", "c"}, resultIDs(first))
}

func TestRecompute_GeoFilterExactness(t *testing.T) {
	cfg := DefaultConfig()
	scorer := newTestScorer(cfg)
	roster := []entity.FriendSnapshot{
		friendAt("inside", 9_000),
		friendAt("outside", 11_000),
		friendAt("close", 50),
	}

	_, results := Recompute(cfg, scorer, roster, originSample(), 1, testNowMillis)

	ids := resultIDs(results)
	assert.Contains(t, ids, "inside")
	assert.Contains(t, ids, "close")
	assert.NotContains(t, ids, "outside")
	for _, r := range results {
		assert.LessOrEqual(t, r.DistanceMeters, cfg.GeoFilterRadiusMeters)
	}
}

func TestRecompute_SubMeterTieOrdering(t *testing.T) {
	cfg := DefaultConfig()
	scorer := newTestScorer(cfg)
	// Four friends under 1.1 m apart with identical recency and status:
	// ordering must be exactly ascending by distance.
	roster := []entity.FriendSnapshot{
		friendAt("d", 1.1), friendAt("b", 0.9), friendAt("a", 0.8), friendAt("c", 1.0),
	}

	_, results := Recompute(cfg, scorer, roster, originSample(), 1, testNowMillis)

	assert.Equal(t, []string{"a", "b", "c", "d"}, resultIDs(results))
}

func TestRecompute_CapEnforcement(t *testing.T) {
	cfg := DefaultConfig()
	scorer := newTestScorer(cfg)

	roster := make([]entity.FriendSnapshot, 0, 1500)
	for i := 0; i < 1500; i++ {
		roster = append(roster, friendAt(fmt.Sprintf("f-%04d", i), float64(i%500)+1))
	}

	_, results := Recompute(cfg, scorer, roster, originSample(), 1, testNowMillis)
	assert.LessOrEqual(t, len(results), cfg.MaxTrackedFriends)

	_, smaller := Recompute(cfg, scorer, roster[:200], originSample(), 2, testNowMillis)
	assert.Len(t, smaller, 200)
}

func TestRecompute_SkipsMalformedEntries(t *testing.T) {
	cfg := DefaultConfig()
	scorer := newTestScorer(cfg)
	roster := []entity.FriendSnapshot{
		friendAt("good", 100),
		{ID: "nan", Coordinate: &entity.Coordinate{Latitude: math.NaN()}},
		{ID: "noloc"},
	}

	_, results := Recompute(cfg, scorer, roster, originSample(), 1, testNowMillis)

	assert.Equal(t, []string{"good"}, resultIDs(results))
}

func TestRecompute_UpdatesProvenance(t *testing.T) {
	cfg := DefaultConfig()
	scorer := newTestScorer(cfg)
	sample := originSample()

	st, results := Recompute(cfg, scorer, []entity.FriendSnapshot{friendAt("a", 500)}, sample, 77, testNowMillis)

	require.NotNil(t, st.LastUserSample)
	assert.Equal(t, sample, *st.LastUserSample)
	assert.Equal(t, uint64(77), st.LastRosterFingerprint)
	assert.Equal(t, testNowMillis, st.LastRecalculationAtMillis)
	assert.Equal(t, results, st.CachedResults)
}

func TestRecompute_FormattedDistances(t *testing.T) {
	cfg := DefaultConfig()
	scorer := newTestScorer(cfg)
	roster := []entity.FriendSnapshot{
		{ID: "A", DisplayName: "A", Coordinate: &entity.Coordinate{Latitude: 0.0045}, IsOnline: true, LastActiveAtMillis: testNowMillis},
		{ID: "B", DisplayName: "B", Coordinate: &entity.Coordinate{Latitude: 0.018}, IsOnline: true, LastActiveAtMillis: testNowMillis},
	}

	_, results := Recompute(cfg, scorer, roster, originSample(), 1, testNowMillis)

	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].ID)
	assert.Equal(t, "500 m", results[0].FormattedDistance)
	assert.Equal(t, "B", results[1].ID)
	assert.Equal(t, "2.0 km", results[1].FormattedDistance)
}

func TestPassthrough_KeepsFriendsWithoutUserLocation(t *testing.T) {
	cfg := DefaultConfig()
	roster := []entity.FriendSnapshot{
		{ID: "b", DisplayName: "Bob"},
		{ID: "a", DisplayName: "Alice", Coordinate: &entity.Coordinate{Latitude: 1}},
	}

	results := Passthrough(cfg, roster)

	require.Len(t, results, 2)
	assert.Equal(t, []string{"a", "b"}, resultIDs(results))
	for _, r := range results {
		assert.False(t, r.Ranked())
		assert.Empty(t, r.FormattedDistance)
	}
}

func TestPassthrough_AppliesCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTrackedFriends = 3
	roster := make([]entity.FriendSnapshot, 10)
	for i := range roster {
		roster[i] = entity.FriendSnapshot{ID: fmt.Sprintf("f-%d", i)}
	}

	assert.Len(t, Passthrough(cfg, roster), 3)
}

func resultIDs(results []entity.NearbyFriendResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids
}
