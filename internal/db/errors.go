package db

import "errors"

var (
	// ErrInvalidFormat is returned when a sync payload does not match the
	// expected server response shape. Rejected before any write.
	ErrInvalidFormat = errors.New("invalid response format")
)
