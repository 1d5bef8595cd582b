package event

import "context"

type MessageHandler func(ctx context.Context, msg []byte, headers map[string]interface{}) error

// LocationPing is the wire payload published by a friend's device on every
// location fix.
type LocationPing struct {
	FriendID         string  `json:"friendId"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Online           bool    `json:"online"`
	CapturedAtMillis int64   `json:"capturedAtMillis"`
}
