package entity

// UserLocationSample is the most recent fix for the local user. The engine
// only ever holds one of these at a time.
type UserLocationSample struct {
	Coordinate       Coordinate `json:"coordinate"`
	CapturedAtMillis int64      `json:"capturedAtMillis"`
}

func NewUserLocationSample(coord Coordinate, capturedAtMillis int64) (UserLocationSample, error) {
	if !coord.Valid() {
		return UserLocationSample{}, ErrInvalidCoordinate
	}
	if capturedAtMillis < 0 {
		return UserLocationSample{}, ErrTimestampNegative
	}
	return UserLocationSample{Coordinate: coord, CapturedAtMillis: capturedAtMillis}, nil
}

// FriendSnapshot is one roster entry as delivered by the friends
// collaborator. Coordinate is nil for a friend that has never reported a
// location. Roster order carries no meaning; only membership and field
// values do.
type FriendSnapshot struct {
	ID                 string      `json:"id"`
	DisplayName        string      `json:"displayName"`
	Coordinate         *Coordinate `json:"coordinate,omitempty"`
	IsOnline           bool        `json:"isOnline"`
	LastActiveAtMillis int64       `json:"lastActiveAtMillis"`
}

func NewFriendSnapshot(id, displayName string, coord *Coordinate, online bool, lastActiveAtMillis int64) (FriendSnapshot, error) {
	if id == "" {
		return FriendSnapshot{}, ErrIDIsRequired
	}
	if lastActiveAtMillis < 0 {
		return FriendSnapshot{}, ErrTimestampNegative
	}
	return FriendSnapshot{
		ID:                 id,
		DisplayName:        displayName,
		Coordinate:         coord,
		IsOnline:           online,
		LastActiveAtMillis: lastActiveAtMillis,
	}, nil
}
