package stayfinder

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to
// discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stayfinder/stayfinder-go/internal/storage"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net bounding the total time spent on a single HTTP request.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the SDK's HTTP client wholesale. Later
// transport-wrapping options apply on top of the supplied client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) error {
		if h == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = h
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Dumps include auth tokens; do not enable in
// production environments.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithRetry retries recoverable failures (network errors, 5xx, 408, 429)
// up to maxAttempts total attempts with exponential backoff. By default the
// SDK never retries; every failure propagates to the caller unchanged.
func WithRetry(maxAttempts int) Option {
	return func(c *Client) error {
		if maxAttempts < 2 {
			return fmt.Errorf("retry needs at least 2 attempts, got %d", maxAttempts)
		}
		c.http.Transport = &retryTransport{base: c.http.Transport, maxAttempts: maxAttempts}
		return nil
	}
}

// WithStorage replaces the backend used to persist the session blob. The
// default is a file store under the user config directory.
func WithStorage(st Storage) Option {
	return func(c *Client) error {
		if st == nil {
			return fmt.Errorf("storage must not be nil")
		}
		c.store = st
		return nil
	}
}

// WithSQLiteStorage persists the session blob in a SQLite database at
// path, for hosts that already keep local state in SQLite.
func WithSQLiteStorage(path string) Option {
	return func(c *Client) error {
		st, err := storage.NewSQLiteStore(path)
		if err != nil {
			return err
		}
		c.store = st
		return nil
	}
}

// WithClock overrides the clock driving the session expiry timer.
// Intended for tests.
func WithClock(cl Clock) Option {
	return func(c *Client) error {
		if cl == nil {
			return fmt.Errorf("clock must not be nil")
		}
		c.clock = cl
		return nil
	}
}
