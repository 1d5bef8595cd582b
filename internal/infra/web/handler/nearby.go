package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/pkg/logger"
)

// NearbyStreamer is the slice of the proximity engine the web layer needs.
type NearbyStreamer interface {
	Subscribe(buffer int) (string, <-chan []entity.NearbyFriendResult)
	Unsubscribe(id string)
	Snapshot() []entity.NearbyFriendResult
}

type Nearby struct {
	Engine NearbyStreamer
	Logger logger.Logger
}

func NewNearbyHandler(engine NearbyStreamer, log logger.Logger) *Nearby {
	return &Nearby{Engine: engine, Logger: log}
}

// Get returns the last emitted snapshot as JSON. Before the first emission
// the list is empty, never an error.
func (h *Nearby) Get(w http.ResponseWriter, r *http.Request) {
	snapshot := h.Engine.Snapshot()
	if snapshot == nil {
		snapshot = []entity.NearbyFriendResult{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		h.Logger.Error(r.Context(), "Failed to encode nearby snapshot", logger.WithError(err))
	}
}

// Stream serves the ranked nearby list over SSE. Every event is a complete
// replacement snapshot. The subscription ends with the request context.
func (h *Nearby) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	id, ch := h.Engine.Subscribe(0)
	defer h.Engine.Unsubscribe(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	h.Logger.Info(r.Context(), "Nearby stream subscribed", logger.String("subscription_id", id))

	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, ok := <-ch:
			if !ok {
				return
			}
			payload, err := json.Marshal(snapshot)
			if err != nil {
				h.Logger.Error(r.Context(), "Failed to encode snapshot event", logger.WithError(err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: nearby\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
