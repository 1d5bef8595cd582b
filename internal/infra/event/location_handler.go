package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DioGolang/GoNearby/internal/application/port/outbound"
	"github.com/DioGolang/GoNearby/internal/domain/entity"
	"github.com/DioGolang/GoNearby/pkg/logger"
)

// NewLocationPingHandler builds the handler for friends' location pings:
// the presence store is updated and the roster refresher is nudged so the
// engine sees the change without waiting for the next periodic refresh.
// A malformed ping is dropped (acked), never retried.
func NewLocationPingHandler(
	presence outbound.PresenceRepository,
	nudge func(),
	log logger.Logger,
) MessageHandler {
	return func(ctx context.Context, msg []byte, headers map[string]interface{}) error {
		var ping LocationPing
		if err := json.Unmarshal(msg, &ping); err != nil {
			log.Warn(ctx, "Dropping undecodable location ping", logger.WithError(err))
			return nil
		}
		if ping.FriendID == "" {
			log.Warn(ctx, "Dropping location ping without friend id")
			return nil
		}
		coord := entity.Coordinate{Latitude: ping.Latitude, Longitude: ping.Longitude}
		if !coord.Valid() {
			log.Warn(ctx, "Dropping location ping with non-finite coordinate",
				logger.String("friend_id", ping.FriendID),
			)
			return nil
		}

		if err := presence.UpdateLocation(ctx, ping.FriendID, ping.Latitude, ping.Longitude, ping.CapturedAtMillis); err != nil {
			return fmt.Errorf("update presence: %w", err)
		}
		if nudge != nil {
			nudge()
		}
		log.Debug(ctx, "Location ping applied",
			logger.String("friend_id", ping.FriendID),
			logger.Int64("captured_at", ping.CapturedAtMillis),
		)
		return nil
	}
}
