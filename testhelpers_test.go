package stayfinder

import (
	"sync"
	"testing"
	"time"

	"github.com/stayfinder/stayfinder-go/internal/storage"
)

// fakeClock drives the session expiry timer with virtual time.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	fireAt  time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, fireAt: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves virtual time forward and fires due timers. Callbacks run
// outside the clock lock so they may re-arm or stop timers.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.fireAt.After(c.now) {
			t.fired = true
			due = append(due, t.fn)
		}
	}
	c.mu.Unlock()
	for _, fn := range due {
		fn()
	}
}

// newTestClient wires a Client against baseURL with in-memory storage.
func newTestClient(t *testing.T, baseURL string, clock Clock, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithStorage(storage.NewMemStore())}, opts...)
	if clock != nil {
		opts = append(opts, WithClock(clock))
	}
	c, err := New(Config{
		APIKey:         "test-key",
		AuthURL:        baseURL,
		DatabaseURL:    baseURL,
		ImageUploadURL: baseURL + "/storeImage",
	}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// seedIdentity installs an identity directly, bypassing the auth backend.
func seedIdentity(c *Client, userID, token string, expiry time.Time) {
	c.session.setIdentity(&Identity{UserID: userID, Email: userID + "@example.com", Token: token, TokenExpiry: expiry})
}
