package engine

import (
	"math"
	"sort"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/internal/domain/geo"
	"github.com/DioGolang/GoNearby/internal/domain/ranking"
)

// State is the engine's owned recomputation state: the last user sample and
// the provenance of the cached result set. It is only ever read and written
// from the engine's single processing goroutine, so it needs no locking;
// Recompute takes a State and returns a new one rather than mutating in
// place, which keeps that single-writer property structural.
type State struct {
	LastUserSample            *entity.UserLocationSample
	LastRecalculationAtMillis int64
	LastRosterFingerprint     uint64
	CachedResults             []entity.NearbyFriendResult
}

// Recompute runs the full distance/filter/score/sort pass over the roster
// and returns the successor state together with the new ranked results.
//
// The roster is capped to MaxTrackedFriends by taking the incoming prefix
// before anything else happens; this mirrors the historical behavior and is
// a known limitation, not a ranking choice. Entries without a coordinate,
// or with a non-finite one, are skipped entry-locally and never abort the
// pass.
func Recompute(cfg Config, scorer *ranking.Scorer, roster []entity.FriendSnapshot, sample entity.UserLocationSample, rosterFingerprint uint64, nowMillis int64) (State, []entity.NearbyFriendResult) {
	capped := roster
	if len(capped) > cfg.MaxTrackedFriends {
		capped = capped[:cfg.MaxTrackedFriends]
	}

	results := make([]entity.NearbyFriendResult, 0, len(capped))
	for i := range capped {
		f := &capped[i]
		if f.Coordinate == nil || !f.Coordinate.Valid() {
			continue
		}
		d := geo.Distance(sample.Coordinate, *f.Coordinate)
		if math.IsNaN(d) || d > cfg.GeoFilterRadiusMeters {
			continue
		}
		results = append(results, entity.NearbyFriendResult{
			ID:                 f.ID,
			DisplayName:        f.DisplayName,
			Coordinate:         *f.Coordinate,
			DistanceMeters:     d,
			FormattedDistance:  geo.FormatDistance(d),
			IsOnline:           f.IsOnline,
			LastActiveAtMillis: f.LastActiveAtMillis,
			RankScore:          scorer.Score(d, f.LastActiveAtMillis, f.IsOnline, nowMillis),
		})
	}

	sortResults(results)

	st := State{
		LastUserSample:            &sample,
		LastRecalculationAtMillis: nowMillis,
		LastRosterFingerprint:     rosterFingerprint,
		CachedResults:             results,
	}
	return st, results
}

// sortResults orders ascending by rank score, tie-broken by distance and
// then id so the ordering is fully deterministic under near-ties.
func sortResults(results []entity.NearbyFriendResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.RankScore != b.RankScore {
			return a.RankScore < b.RankScore
		}
		if a.DistanceMeters != b.DistanceMeters {
			return a.DistanceMeters < b.DistanceMeters
		}
		return a.ID < b.ID
	})
}

// Passthrough builds the degraded-mode result set used while no user
// location has resolved yet: every roster entry (capped) is carried over
// unranked so the consumer is never shown an empty list purely because the
// local GPS has not fixed. Sorted by id for determinism.
func Passthrough(cfg Config, roster []entity.FriendSnapshot) []entity.NearbyFriendResult {
	capped := roster
	if len(capped) > cfg.MaxTrackedFriends {
		capped = capped[:cfg.MaxTrackedFriends]
	}
	results := make([]entity.NearbyFriendResult, 0, len(capped))
	for i := range capped {
		f := &capped[i]
		r := entity.NearbyFriendResult{
			ID:                 f.ID,
			DisplayName:        f.DisplayName,
			DistanceMeters:     entity.UnrankedDistance,
			IsOnline:           f.IsOnline,
			LastActiveAtMillis: f.LastActiveAtMillis,
		}
		if f.Coordinate != nil {
			r.Coordinate = *f.Coordinate
		}
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}
