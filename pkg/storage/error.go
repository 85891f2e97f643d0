package storage

import "errors"

var (
	// ErrNotConfigured is returned when storage operations are attempted
	// but no storage driver has been configured.
	ErrNotConfigured = errors.New("storage not configured")

	// ErrInvalidRecord is returned when a record is missing required fields.
	ErrInvalidRecord = errors.New("invalid record")
)
