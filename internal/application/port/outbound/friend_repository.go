package outbound

import "context"

// FriendRecord is one edge of the friend graph as persisted: identity and
// display name only, no liveness.
type FriendRecord struct {
	ID          string
	DisplayName string
}

type FriendRepository interface {
	ListFriends(ctx context.Context, userID string) ([]FriendRecord, error)
}
