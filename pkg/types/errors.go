package types

import "errors"

// Sentinel errors the pipeline wraps so callers can branch with errors.Is
// without depending on internal packages.
var (
	// ErrValidation marks a submission rejected before any processing.
	ErrValidation = errors.New("validation failed")

	// ErrBackendUnavailable marks a run aborted because a backing service
	// (embedding provider, corpus store) could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
