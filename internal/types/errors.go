package types

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the backend has no record for the requested id.
var ErrNotFound = errors.New("resource not found")

// AuthError is a categorized failure from the auth backend. Code is the
// backend's machine code; Message is the fixed user-facing translation.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed (%s): %s", e.Code, e.Message)
}

// StatusError reports a non-2xx response from the backend. The response is
// propagated unchanged to the caller; Body carries a bounded prefix of the
// payload for diagnostics.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// Recoverable reports whether retrying the request could plausibly succeed.
// Client errors are final, except request timeouts and rate limiting.
func (e *StatusError) Recoverable() bool {
	switch {
	case e.StatusCode == 408 || e.StatusCode == 429:
		return true
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return false
	default:
		return true
	}
}
