package resource

import "errors"

// Sentinel error kinds (stable for errors.Is and for mapping to API status codes).
var (
	ErrInvalidInput = errors.New("invalid_input")
	ErrNotFound     = errors.New("not_found")
	ErrConflict     = errors.New("conflict")

	// ErrSingleton marks a broken exactly-one-row contract (configuration table).
	ErrSingleton = errors.New("singleton_violation")
)
