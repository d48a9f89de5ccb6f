package service

import "errors"

// Sentinel errors the HTTP error middleware maps to status codes.
var (
	// ErrStorage wraps database failures so callers can distinguish them
	// from domain errors.
	ErrStorage = errors.New("storage unavailable")

	// ErrNotFound marks a lookup for an entity the user does not own or
	// that does not exist.
	ErrNotFound = errors.New("not found")
)
