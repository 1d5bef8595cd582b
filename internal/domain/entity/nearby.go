package entity

// UnrankedDistance marks a result produced while the local user has no GPS
// fix yet: the friend is passed through rather than dropped, with no
// meaningful distance attached.
const UnrankedDistance = -1.0

// NearbyFriendResult is one derived entry of the ranked output. Recomputed
// wholesale each cycle, never mutated in place.
type NearbyFriendResult struct {
	ID                 string     `json:"id"`
	DisplayName        string     `json:"displayName"`
	Coordinate         Coordinate `json:"coordinate"`
	DistanceMeters     float64    `json:"distanceMeters"`
	FormattedDistance  string     `json:"formattedDistance"`
	IsOnline           bool       `json:"isOnline"`
	LastActiveAtMillis int64      `json:"lastActiveAtMillis"`
	RankScore          float32    `json:"rankScore"`
}

// Ranked reports whether the entry carries a real distance, as opposed to
// the degraded-mode pass-through.
func (r NearbyFriendResult) Ranked() bool {
	return r.DistanceMeters >= 0
}
