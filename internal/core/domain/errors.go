package domain

import "errors"

// Typed failures shared across layers. Adapters translate driver or transport
// failures into these at the boundary; handlers map them onto status codes.
var (
	// ErrNotFound covers both a nonexistent record and one owned by another
	// user; callers must not be able to tell those apart.
	ErrNotFound = errors.New("record not found")

	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInactiveAccount = errors.New("account is inactive")

	ErrDuplicateEmail = errors.New("email already registered")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrStorageUnavailable   = errors.New("attachment storage not configured")
	ErrStorageError         = errors.New("attachment storage failure")
)
