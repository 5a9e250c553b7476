package util

import "errors"

var (
	// ErrNotFound covers unknown ids and ids whose owner check must stay
	// opaque to the caller.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when a record exists but belongs to another
	// user.
	ErrForbidden = errors.New("permission denied")

	// ErrConflict is returned for state transitions attempted from the wrong
	// status, including duplicate submissions.
	ErrConflict = errors.New("operation not allowed in the current status")

	// ErrGenerationFailed marks content-generator output that could not be
	// parsed or that violated its declared schema.
	ErrGenerationFailed = errors.New("generator returned invalid content")

	// ErrUnavailable marks a durable-store failure. It never crosses the
	// session-store boundary; call sites treat it as "not found here".
	ErrUnavailable = errors.New("durable store unavailable")

	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
