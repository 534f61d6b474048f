package dashboard

import "errors"

var (
	// ErrTokenInvalid covers bad signatures, wrong algorithms and
	// structurally malformed session credentials.
	ErrTokenInvalid = errors.New("invalid session credential")
	// ErrTokenExpired is returned when a credential's expiry has elapsed.
	ErrTokenExpired = errors.New("session credential expired")

	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")

	// ErrUpstreamAuth is returned when a call to the Discord API fails,
	// regardless of the underlying cause.
	ErrUpstreamAuth = errors.New("upstream authentication failure")
)
