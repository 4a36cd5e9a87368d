package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput marks client errors (missing or malformed fields).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable marks a durable store failure on an operation that must
	// not be served from the fallback store.
	ErrUnavailable = errors.New("store unavailable")
)

// IsClientError reports whether err is a domain-level error that must reach
// the caller as-is instead of triggering a store fallback.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrInvalidInput)
}
