package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/pkg/logger"
)

// LocationSink is satisfied by the proximity engine's OfferLocation.
type LocationSink interface {
	OfferLocation(sample entity.UserLocationSample)
}

type locationDTO struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	CapturedAtMillis int64   `json:"capturedAtMillis"`
}

type Location struct {
	Sink   LocationSink
	Logger logger.Logger
}

func NewLocationHandler(sink LocationSink, log logger.Logger) *Location {
	return &Location{Sink: sink, Logger: log}
}

// Update ingests the local user's own location fix and feeds it to the
// engine. A missing timestamp defaults to now.
func (h *Location) Update(w http.ResponseWriter, r *http.Request) {
	var dto locationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.CapturedAtMillis == 0 {
		dto.CapturedAtMillis = time.Now().UnixMilli()
	}

	sample, err := entity.NewUserLocationSample(
		entity.Coordinate{Latitude: dto.Latitude, Longitude: dto.Longitude},
		dto.CapturedAtMillis,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.Sink.OfferLocation(sample)
	h.Logger.Debug(r.Context(), "User location accepted",
		logger.Float64("lat", dto.Latitude),
		logger.Float64("lng", dto.Longitude),
	)
	w.WriteHeader(http.StatusAccepted)
}
