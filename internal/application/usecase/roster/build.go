package roster

import (
	"context"
	"fmt"

	"github.com/DioGolang/GoNearby/internal/application/port/outbound"
	"github.com/DioGolang/GoNearby/internal/domain/entity"
)

// BuildUseCaseImpl assembles the full roster delivered to the proximity
// engine: the friend graph comes from the relational store, liveness comes
// from the presence store, and the two are merged into FriendSnapshots.
// A friend with no presence record is still part of the roster, just
// offline and without a coordinate.
type BuildUseCaseImpl struct {
	Friends  outbound.FriendRepository
	Presence outbound.PresenceRepository
}

func NewBuildRosterUseCase(friends outbound.FriendRepository, presence outbound.PresenceRepository) *BuildUseCaseImpl {
	return &BuildUseCaseImpl{Friends: friends, Presence: presence}
}

func (uc *BuildUseCaseImpl) Execute(ctx context.Context, input BuildInput) ([]entity.FriendSnapshot, error) {
	records, err := uc.Friends.ListFriends(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	if len(records) == 0 {
		return []entity.FriendSnapshot{}, nil
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	presence, err := uc.Presence.GetPresence(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get presence: %w", err)
	}

	snapshots := make([]entity.FriendSnapshot, 0, len(records))
	for _, rec := range records {
		var coord *entity.Coordinate
		var online bool
		var lastActive int64
		if p, ok := presence[rec.ID]; ok {
			online = p.IsOnline
			lastActive = p.LastActiveAtMillis
			if p.HasLocation {
				coord = &entity.Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
			}
		}
		snap, err := entity.NewFriendSnapshot(rec.ID, rec.DisplayName, coord, online, lastActive)
		if err != nil {
			// A malformed record is skipped, never fatal to the roster.
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}
