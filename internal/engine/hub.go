package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/pkg/metrics"
)

const defaultSubscriberBuffer = 4

// hub fans emitted snapshots out to subscribers. Each subscriber gets a
// bounded buffered channel; when a subscriber is too slow the oldest
// pending snapshot is dropped in favor of the newest, so a recovering
// consumer always sees the freshest state.
type hub struct {
	mu      sync.RWMutex
	subs    map[string]chan []entity.NearbyFriendResult
	last    []entity.NearbyFriendResult
	closed  bool
	metrics metrics.Metrics
}

func newHub(m metrics.Metrics) *hub {
	return &hub{
		subs:    make(map[string]chan []entity.NearbyFriendResult),
		metrics: m,
	}
}

func (h *hub) Subscribe(buffer int) (string, <-chan []entity.NearbyFriendResult) {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	ch := make(chan []entity.NearbyFriendResult, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	id := uuid.NewString()
	if h.closed {
		close(ch)
		return id, ch
	}
	h.subs[id] = ch
	// Late subscribers immediately get the last known-good snapshot.
	if h.last != nil {
		ch <- h.last
	}
	return id, ch
}

func (h *hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *hub) Publish(snapshot []entity.NearbyFriendResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.last = snapshot
	for _, ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
				if h.metrics != nil {
					h.metrics.IncSubscriberDropped()
				}
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// Snapshot returns the last published result set, nil before the first
// emission.
func (h *hub) Snapshot() []entity.NearbyFriendResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
