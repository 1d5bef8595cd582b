package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DioGolang/GoNearby/internal/application/port/outbound"
)

type fakeFriendRepo struct {
	records []outbound.FriendRecord
	err     error
}

func (f *fakeFriendRepo) ListFriends(ctx context.Context, userID string) ([]outbound.FriendRecord, error) {
	return f.records, f.err
}

type fakePresenceRepo struct {
	presence map[string]outbound.Presence
	err      error
}

func (f *fakePresenceRepo) UpdateLocation(ctx context.Context, friendID string, lat, lng float64, atMillis int64) error {
	return nil
}

func (f *fakePresenceRepo) SetOnline(ctx context.Context, friendID string, online bool, atMillis int64) error {
	return nil
}

func (f *fakePresenceRepo) GetPresence(ctx context.Context, friendIDs []string) (map[string]outbound.Presence, error) {
	return f.presence, f.err
}

func TestBuildRoster_MergesGraphAndPresence(t *testing.T) {
	//Arrange
	friends := &fakeFriendRepo{records: []outbound.FriendRecord{
		{ID: "a", DisplayName: "Alice"},
		{ID: "b", DisplayName: "Bob"},
	}}
	presence := &fakePresenceRepo{presence: map[string]outbound.Presence{
		"a": {Latitude: 1.5, Longitude: 2.5, HasLocation: true, IsOnline: true, LastActiveAtMillis: 999},
	}}
	uc := NewBuildRosterUseCase(friends, presence)

	//Act
	snapshots, err := uc.Execute(context.Background(), BuildInput{UserID: "u-1"})

	//Assert
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	assert.Equal(t, "a", snapshots[0].ID)
	require.NotNil(t, snapshots[0].Coordinate)
	assert.Equal(t, 1.5, snapshots[0].Coordinate.Latitude)
	assert.True(t, snapshots[0].IsOnline)
	assert.Equal(t, int64(999), snapshots[0].LastActiveAtMillis)

	// No presence record means offline and location-less, but still present.
	assert.Equal(t, "b", snapshots[1].ID)
	assert.Nil(t, snapshots[1].Coordinate)
	assert.False(t, snapshots[1].IsOnline)
}

func TestBuildRoster_EmptyGraph(t *testing.T) {
	uc := NewBuildRosterUseCase(&fakeFriendRepo{}, &fakePresenceRepo{})

	snapshots, err := uc.Execute(context.Background(), BuildInput{UserID: "u-1"})

	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestBuildRoster_PropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")

	t.Run("friend graph failure", func(t *testing.T) {
		uc := NewBuildRosterUseCase(&fakeFriendRepo{err: storeErr}, &fakePresenceRepo{})

		_, err := uc.Execute(context.Background(), BuildInput{UserID: "u-1"})

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("presence failure", func(t *testing.T) {
		friends := &fakeFriendRepo{records: []outbound.FriendRecord{{ID: "a", DisplayName: "Alice"}}}
		uc := NewBuildRosterUseCase(friends, &fakePresenceRepo{err: storeErr})

		_, err := uc.Execute(context.Background(), BuildInput{UserID: "u-1"})

		assert.ErrorIs(t, err, storeErr)
	})
}

func TestBuildRosterBreakerDecorator_OpensAfterConsecutiveFailures(t *testing.T) {
	storeErr := errors.New("connection refused")
	failing := NewBuildRosterUseCase(&fakeFriendRepo{err: storeErr}, &fakePresenceRepo{})

	uc := NewBuildRosterBreakerDecorator(failing, gobreaker.Settings{
		Name: "roster-test",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	for i := 0; i < 3; i++ {
		_, err := uc.Execute(context.Background(), BuildInput{UserID: "u-1"})
		assert.ErrorIs(t, err, storeErr)
	}

	_, err := uc.Execute(context.Background(), BuildInput{UserID: "u-1"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
