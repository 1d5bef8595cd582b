package outbound

import "context"

// Presence is a friend's latest reported liveness. HasLocation is false for
// a friend that has never sent a fix.
type Presence struct {
	Latitude           float64
	Longitude          float64
	HasLocation        bool
	IsOnline           bool
	LastActiveAtMillis int64
}

type PresenceRepository interface {
	UpdateLocation(ctx context.Context, friendID string, lat, lng float64, atMillis int64) error
	SetOnline(ctx context.Context, friendID string, online bool, atMillis int64) error
	GetPresence(ctx context.Context, friendIDs []string) (map[string]Presence, error)
}
