package domain

import "errors"

var (
	// ErrInvalidArgument marks caller input that failed validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUpstream marks a failure of an external collaborator (article feed).
	ErrUpstream = errors.New("upstream unavailable")

	// ErrNotConfigured marks missing required configuration, such as the map API key.
	ErrNotConfigured = errors.New("not configured")
)
