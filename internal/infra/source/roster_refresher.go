package source

import (
	"context"
	"time"

	"github.com/DioGolang/GoNearby/internal/application/usecase/roster"
	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/pkg/logger"
)

// RosterSink is where assembled rosters go; satisfied by the proximity
// engine's OfferRoster.
type RosterSink interface {
	OfferRoster(roster []entity.FriendSnapshot)
}

// RosterRefresher is the roster collaborator: it assembles FriendSnapshots
// on a fixed interval and whenever Nudge is called (a friend ping landed),
// and pushes them to the sink. An assembly failure is logged and the cycle
// skipped; the engine keeps serving its last known-good result.
type RosterRefresher struct {
	userID   string
	build    roster.BuildUseCase
	sink     RosterSink
	log      logger.Logger
	interval time.Duration
	nudgeCh  chan struct{}
}

func NewRosterRefresher(userID string, build roster.BuildUseCase, sink RosterSink, log logger.Logger, interval time.Duration) *RosterRefresher {
	return &RosterRefresher{
		userID:   userID,
		build:    build,
		sink:     sink,
		log:      log,
		interval: interval,
		nudgeCh:  make(chan struct{}, 1),
	}
}

// Nudge requests an out-of-band refresh. Coalescing: while a refresh is
// already pending, further nudges are no-ops.
func (r *RosterRefresher) Nudge() {
	select {
	case r.nudgeCh <- struct{}{}:
	default:
	}
}

func (r *RosterRefresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		case <-r.nudgeCh:
			r.refresh(ctx)
		}
	}
}

func (r *RosterRefresher) refresh(ctx context.Context) {
	snapshots, err := r.build.Execute(ctx, roster.BuildInput{UserID: r.userID})
	if err != nil {
		r.log.Warn(ctx, "Roster refresh failed, keeping last known roster",
			logger.String("user_id", r.userID),
			logger.WithError(err),
		)
		return
	}
	r.sink.OfferRoster(snapshots)
}
