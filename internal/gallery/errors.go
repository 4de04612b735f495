// Package gallery implements the event-scoped face matching core: the event
// registry, the upload pipeline, the matching engine, and presence tracking.
package gallery

import "errors"

// Request-local error taxonomy. All of these surface directly to the caller;
// none are fatal to the process.
var (
	// ErrInvalidInput covers missing or malformed fields and disallowed
	// file types. The caller can retry after fixing the input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownEvent means the event does not exist in the registry.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrAuth means the password did not match. Guest matching reports
	// unknown events through this same error so the response does not
	// reveal whether an event exists.
	ErrAuth = errors.New("authentication failed")

	// ErrNoFaceFound means the guest image yielded zero descriptors.
	ErrNoFaceFound = errors.New("no face found")

	// ErrConflict means an event with the same identifier already exists.
	ErrConflict = errors.New("event already exists")
)
