package database

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/DioGolang/GoNearby/internal/application/port/outbound"
	"github.com/DioGolang/GoNearby/pkg/logger"
)

const (
	geoKey            = "friends_locations"
	presenceKeyPrefix = "presence:"
)

// RedisPresenceRepository keeps each friend's latest fix and liveness in a
// per-friend hash, plus a geo set so ops can inspect the live picture with
// plain GEOSEARCH.
type RedisPresenceRepository struct {
	client *redis.Client
	logger logger.Logger
}

func NewRedisPresenceRepository(client *redis.Client, log logger.Logger) *RedisPresenceRepository {
	return &RedisPresenceRepository{client: client, logger: log}
}

func (r *RedisPresenceRepository) UpdateLocation(ctx context.Context, friendID string, lat, lng float64, atMillis int64) error {
	r.logger.Debug(ctx, "Redis presence update",
		logger.String("friend_id", friendID),
		logger.Float64("lat", lat),
		logger.Float64("lng", lng),
	)

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, presenceKeyPrefix+friendID, map[string]interface{}{
		"lat":         lat,
		"lng":         lng,
		"online":      1,
		"last_active": atMillis,
	})
	pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      friendID,
		Longitude: lng,
		Latitude:  lat,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error(ctx, "Redis presence update failed", logger.WithError(err))
		return fmt.Errorf("redis presence update: %w", err)
	}
	return nil
}

func (r *RedisPresenceRepository) SetOnline(ctx context.Context, friendID string, online bool, atMillis int64) error {
	fields := map[string]interface{}{"online": 0}
	if online {
		fields["online"] = 1
		fields["last_active"] = atMillis
	}
	err := r.client.HSet(ctx, presenceKeyPrefix+friendID, fields).Err()
	if err != nil {
		r.logger.Error(ctx, "Redis HSet failed", logger.WithError(err))
		return err
	}
	return nil
}

func (r *RedisPresenceRepository) GetPresence(ctx context.Context, friendIDs []string) (map[string]outbound.Presence, error) {
	pipe := r.client.Pipeline()
	cmds := make(map[string]*redis.MapStringStringCmd, len(friendIDs))
	for _, id := range friendIDs {
		cmds[id] = pipe.HGetAll(ctx, presenceKeyPrefix+id)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		r.logger.Error(ctx, "Redis presence fan-in failed", logger.WithError(err))
		return nil, fmt.Errorf("redis presence fan-in: %w", err)
	}

	out := make(map[string]outbound.Presence, len(friendIDs))
	for id, cmd := range cmds {
		fields, err := cmd.Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		p := outbound.Presence{}
		if v, ok := fields["online"]; ok {
			p.IsOnline = v == "1"
		}
		if v, ok := fields["last_active"]; ok {
			if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
				p.LastActiveAtMillis = ms
			}
		}
		lat, latOK := fields["lat"]
		lng, lngOK := fields["lng"]
		if latOK && lngOK {
			latF, errLat := strconv.ParseFloat(lat, 64)
			lngF, errLng := strconv.ParseFloat(lng, 64)
			if errLat == nil && errLng == nil {
				p.Latitude, p.Longitude, p.HasLocation = latF, lngF, true
			}
		}
		out[id] = p
	}
	return out, nil
}
