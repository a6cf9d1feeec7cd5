// Package stayfinder is the Go client SDK for the Stayfinder
// accommodation-booking backend. It exposes a session store plus
// booking and listing stores, each a thin facade over the backend's
// REST resources, all sharing one authenticated identity.
package stayfinder

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/stayfinder/stayfinder-go/internal/storage"
)

// DefaultAuthURL is the identity-toolkit endpoint used when Config.AuthURL
// is left empty.
const DefaultAuthURL = "https://www.googleapis.com/identitytoolkit/v3/relyingparty"

// Config carries the backend endpoints and the API key. DatabaseURL and
// APIKey are required; ImageUploadURL is only needed for UploadImage.
type Config struct {
	APIKey         string `envconfig:"API_KEY"`
	AuthURL        string `envconfig:"AUTH_URL"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
	ImageUploadURL string `envconfig:"IMAGE_UPLOAD_URL"`
}

// ConfigFromEnv loads Config from STAYFINDER_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	err := envconfig.Process("stayfinder", &cfg)
	return cfg, err
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	cfg   Config
	http  *http.Client
	store Storage
	clock Clock

	session  *SessionStore
	bookings *BookingStore
	listings *ListingStore

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given backend configuration. Additional
// options can be provided via functional arguments.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("stayfinder: APIKey is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("stayfinder: DatabaseURL is required")
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}

	c := &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: 30 * time.Second},
		clock: systemClock{},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.store == nil {
		dir, err := storage.DefaultDir()
		if err != nil {
			return nil, err
		}
		fs, err := storage.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		c.store = fs
	}

	c.session = newSessionStore(c.http, cfg.AuthURL, cfg.APIKey, c.store, c.clock)
	c.bookings = newBookingStore(c.session, c.http, cfg.DatabaseURL)
	c.listings = newListingStore(c.session, c.http, cfg.DatabaseURL, cfg.ImageUploadURL)
	return c, nil
}

// Session returns the session store.
func (c *Client) Session() *SessionStore { return c.session }

// Bookings returns the booking store.
func (c *Client) Bookings() *BookingStore { return c.bookings }

// Listings returns the listing store.
func (c *Client) Listings() *ListingStore { return c.listings }

// Close disposes the session store (cancelling any pending expiry timer)
// and releases the storage backend. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.session.dispose()
	return c.store.Close()
}
