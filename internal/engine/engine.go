// Package engine implements the nearby-friends proximity pipeline: it fuses
// the user's own location stream with the friends roster stream, gates full
// recomputation behind a cost-control policy, ranks and geo-filters the
// roster, and fans change-detected snapshots out to subscribers.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/internal/domain/ranking"
	"github.com/DioGolang/GoNearby/pkg/logger"
	"github.com/DioGolang/GoNearby/pkg/metrics"
)

// ProximityEngine processes ticks from two upstream sources on a single
// goroutine: a tick is handled to completion before the next one is
// accepted, and each input channel holds at most the latest unprocessed
// value (older ticks are discarded, never queued). State is therefore
// single-writer with no locking.
type ProximityEngine struct {
	cfg      Config
	scorer   *ranking.Scorer
	policy   *RecalculationPolicy
	detector *ChangeDetector

	rosterCh   chan []entity.FriendSnapshot
	locationCh chan entity.UserLocationSample

	state        State
	latestRoster []entity.FriendSnapshot
	latestSample *entity.UserLocationSample
	lastEmitted  []entity.NearbyFriendResult
	emittedOnce  bool

	hub     *hub
	log     logger.Logger
	metrics metrics.Metrics
	clock   func() time.Time

	recalcCount atomic.Int64
}

type Option func(*ProximityEngine)

// WithClock overrides the wall clock, used by tests to drive the time and
// displacement thresholds deterministically.
func WithClock(clock func() time.Time) Option {
	return func(e *ProximityEngine) { e.clock = clock }
}

func New(cfg Config, log logger.Logger, m metrics.Metrics, opts ...Option) *ProximityEngine {
	cfg = cfg.Normalize()
	e := &ProximityEngine{
		cfg:        cfg,
		scorer:     ranking.NewScorer(cfg.Weights, cfg.GeoFilterRadiusMeters, cfg.RecencyWindowMs),
		policy:     NewRecalculationPolicy(cfg),
		detector:   NewChangeDetector(cfg.DistanceToleranceMeters, cfg.ScoreTolerance),
		rosterCh:   make(chan []entity.FriendSnapshot, 1),
		locationCh: make(chan entity.UserLocationSample, 1),
		hub:        newHub(m),
		log:        log,
		metrics:    m,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OfferRoster hands the engine a fresh roster. Never blocks: if the
// previous roster has not been picked up yet it is replaced.
func (e *ProximityEngine) OfferRoster(roster []entity.FriendSnapshot) {
	offerLatest(e.rosterCh, roster)
}

// OfferLocation hands the engine a fresh user location sample. Never
// blocks; latest value wins.
func (e *ProximityEngine) OfferLocation(sample entity.UserLocationSample) {
	offerLatest(e.locationCh, sample)
}

func offerLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Run processes ticks until ctx is cancelled, then closes all subscriber
// channels. No background work outlives the call.
func (e *ProximityEngine) Run(ctx context.Context) error {
	defer e.hub.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case roster := <-e.rosterCh:
			e.latestRoster = roster
			if e.metrics != nil {
				e.metrics.SetRosterSize(len(roster))
			}
			e.handleTick(ctx)
		case sample := <-e.locationCh:
			e.latestSample = &sample
			e.handleTick(ctx)
		}
	}
}

func (e *ProximityEngine) handleTick(ctx context.Context) {
	nowMillis := e.clock().UnixMilli()

	if e.latestSample == nil {
		// Degraded mode: the roster is passed through unranked until the
		// user's own GPS resolves.
		results := Passthrough(e.cfg, e.latestRoster)
		e.state.CachedResults = results
		e.emit(ctx, results)
		return
	}

	fp := Fingerprint(e.latestRoster)
	trigger, recompute := e.policy.Evaluate(e.state, fp, *e.latestSample, nowMillis)
	if !recompute {
		if e.metrics != nil {
			e.metrics.RecordRecalculationSkipped()
		}
		e.emit(ctx, e.state.CachedResults)
		return
	}

	ctx, span := otel.Tracer("proximity-engine").Start(ctx, "Recompute")
	span.SetAttributes(
		attribute.String("trigger", string(trigger)),
		attribute.Int("roster.size", len(e.latestRoster)),
	)
	start := time.Now()
	st, results := Recompute(e.cfg, e.scorer, e.latestRoster, *e.latestSample, fp, nowMillis)
	elapsed := time.Since(start)
	span.End()

	e.state = st
	e.recalcCount.Add(1)
	if e.metrics != nil {
		e.metrics.RecordRecalculation(string(trigger))
		e.metrics.ObserveRecalculationDuration(elapsed)
	}
	e.log.Debug(ctx, "proximity recalculated",
		logger.String("trigger", string(trigger)),
		logger.Int("roster_size", len(e.latestRoster)),
		logger.Int("nearby", len(results)),
	)

	e.emit(ctx, results)
}

func (e *ProximityEngine) emit(ctx context.Context, results []entity.NearbyFriendResult) {
	if e.emittedOnce && !e.detector.ShouldEmit(e.lastEmitted, results) {
		if e.metrics != nil {
			e.metrics.RecordEmission("suppressed")
		}
		return
	}
	e.lastEmitted = results
	e.emittedOnce = true
	e.hub.Publish(results)
	if e.metrics != nil {
		e.metrics.RecordEmission("emitted")
		e.metrics.SetNearbyCount(len(results))
	}
	e.log.Debug(ctx, "nearby snapshot emitted", logger.Int("entries", len(results)))
}

// Subscribe registers a downstream consumer. Every value received on the
// channel is a complete replacement snapshot. The channel is closed on
// Unsubscribe or engine shutdown.
func (e *ProximityEngine) Subscribe(buffer int) (string, <-chan []entity.NearbyFriendResult) {
	return e.hub.Subscribe(buffer)
}

func (e *ProximityEngine) Unsubscribe(id string) {
	e.hub.Unsubscribe(id)
}

// Snapshot returns the last emitted result set, nil before the first
// emission.
func (e *ProximityEngine) Snapshot() []entity.NearbyFriendResult {
	return e.hub.Snapshot()
}

// Recalculations reports how many full recomputation passes have run.
func (e *ProximityEngine) Recalculations() int64 {
	return e.recalcCount.Load()
}
