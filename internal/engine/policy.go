package engine

import (
	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/internal/domain/geo"
)

// Trigger names the reason a recalculation was performed. Exported so the
// metrics label set stays stable.
type Trigger string

const (
	TriggerFirstTick     Trigger = "first_tick"
	TriggerRosterChanged Trigger = "roster_changed"
	TriggerTimeElapsed   Trigger = "time_elapsed"
	TriggerMoved         Trigger = "moved"
)

// RecalculationPolicy gates full recomputation. Distance and scoring over
// hundreds of friends on every sub-second location tick is wasteful; the
// policy amortizes the cost while bounding staleness to TimeThresholdMs or
// MovementThresholdMeters of displacement, whichever comes first.
type RecalculationPolicy struct {
	cfg Config
}

func NewRecalculationPolicy(cfg Config) *RecalculationPolicy {
	return &RecalculationPolicy{cfg: cfg.Normalize()}
}

// Evaluate decides whether the tick warrants a recompute. It returns the
// trigger that fired and false when the cached result can be reused.
func (p *RecalculationPolicy) Evaluate(st State, rosterFingerprint uint64, sample entity.UserLocationSample, nowMillis int64) (Trigger, bool) {
	if st.LastUserSample == nil {
		return TriggerFirstTick, true
	}
	if rosterFingerprint != st.LastRosterFingerprint {
		return TriggerRosterChanged, true
	}
	if nowMillis-st.LastRecalculationAtMillis > p.cfg.TimeThresholdMs {
		return TriggerTimeElapsed, true
	}
	if geo.Distance(st.LastUserSample.Coordinate, sample.Coordinate) > p.cfg.MovementThresholdMeters {
		return TriggerMoved, true
	}
	return "", false
}
