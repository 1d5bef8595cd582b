package entity

import "errors"

var (
	ErrIDIsRequired      = errors.New("id is required")
	ErrInvalidCoordinate = errors.New("coordinate is not a finite lat/lng pair")
	ErrTimestampNegative = errors.New("timestamp must not be negative")
)
