package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
)

func snapshotOfSize(n int) []entity.NearbyFriendResult {
	out := make([]entity.NearbyFriendResult, n)
	for i := range out {
		out[i] = entity.NearbyFriendResult{ID: string(rune('a' + i))}
	}
	return out
}

func TestHub_FanOut(t *testing.T) {
	h := newHub(&testMetrics{})
	_, first := h.Subscribe(4)
	_, second := h.Subscribe(4)

	h.Publish(snapshotOfSize(2))

	assert.Len(t, <-first, 2)
	assert.Len(t, <-second, 2)
}

func TestHub_LateSubscriberGetsLastSnapshot(t *testing.T) {
	h := newHub(&testMetrics{})
	h.Publish(snapshotOfSize(3))

	_, ch := h.Subscribe(4)

	assert.Len(t, <-ch, 3)
	assert.Len(t, h.Snapshot(), 3)
}

func TestHub_SlowSubscriberKeepsFreshest(t *testing.T) {
	tm := &testMetrics{}
	h := newHub(tm)
	_, ch := h.Subscribe(1)

	h.Publish(snapshotOfSize(1))
	h.Publish(snapshotOfSize(2))
	h.Publish(snapshotOfSize(3))

	// The buffer held one snapshot; older pending ones were dropped in
	// favor of the newest.
	got := <-ch
	assert.Len(t, got, 3)
	assert.GreaterOrEqual(t, tm.dropped.Load(), int64(1))
}

func TestHub_Unsubscribe(t *testing.T) {
	h := newHub(&testMetrics{})
	id, ch := h.Subscribe(4)

	h.Unsubscribe(id)

	_, ok := <-ch
	require.False(t, ok)

	// Publishing after unsubscribe must not panic or deliver.
	h.Publish(snapshotOfSize(1))
}

func TestHub_CloseClosesAllSubscribers(t *testing.T) {
	h := newHub(&testMetrics{})
	_, a := h.Subscribe(4)
	_, b := h.Subscribe(4)

	h.Close()

	_, okA := <-a
	_, okB := <-b
	assert.False(t, okA)
	assert.False(t, okB)

	// Subscribing after close yields an already-closed channel.
	_, late := h.Subscribe(4)
	_, okLate := <-late
	assert.False(t, okLate)
}
