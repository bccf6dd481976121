package extract

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrTargetNotFound indicates a sample has no target word under the fail policy.
	ErrTargetNotFound = errors.New("extract: target word not found")

	// ErrInvalidWindow indicates the window size is not a positive even number.
	ErrInvalidWindow = errors.New("extract: window must be a positive even number")

	// ErrUnknownPolicy indicates an unrecognized not-found policy name.
	ErrUnknownPolicy = errors.New("extract: unknown not-found policy")

	// ErrNoTargets indicates no target forms were configured.
	ErrNoTargets = errors.New("extract: no target forms configured")
)
