package stayfinder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/stayfinder/stayfinder-go/internal/api"
	"github.com/stayfinder/stayfinder-go/internal/signal"
	"github.com/stayfinder/stayfinder-go/internal/storage"
	"github.com/stayfinder/stayfinder-go/internal/types"
)

// authDataKey is the storage key holding the persisted session blob.
const authDataKey = "authData"

// storedAuth is the persisted session blob. The expiry is kept as an
// RFC3339 string for compatibility with earlier clients of the backend.
type storedAuth struct {
	UserID              string `json:"userId"`
	Token               string `json:"token"`
	TokenExpirationDate string `json:"tokenExpirationDate"`
	Email               string `json:"email"`
}

// SessionStore owns the current authenticated identity: it creates it via
// login/signup, restores it from persisted storage, exposes derived
// read-only views, and clears it on logout or token expiry.
//
// Exactly one expiry timer is in flight at a time; login, signup, and
// restore each cancel and replace it.
type SessionStore struct {
	http    *http.Client
	authURL string
	apiKey  string
	store   storage.Store
	clock   Clock

	identity *signal.Signal[*types.Identity]
	authed   *signal.Signal[bool]

	mu    sync.Mutex // guards timer
	timer Timer
}

func newSessionStore(httpClient *http.Client, authURL, apiKey string, store storage.Store, clock Clock) *SessionStore {
	return &SessionStore{
		http:     httpClient,
		authURL:  authURL,
		apiKey:   apiKey,
		store:    store,
		clock:    clock,
		identity: signal.New[*types.Identity](nil),
		authed:   signal.NewDistinct(false),
	}
}

// Login authenticates an existing account and installs the resulting
// identity. Auth failures surface as *AuthError with the backend's
// categorized code.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*Identity, error) {
	ar, err := api.SignIn(ctx, s.http, s.authURL, s.apiKey, email, password)
	track("session", "login", err)
	if err != nil {
		return nil, err
	}
	return s.install(ar)
}

// Signup registers a new account and installs the resulting identity.
func (s *SessionStore) Signup(ctx context.Context, email, password string) (*Identity, error) {
	ar, err := api.SignUp(ctx, s.http, s.authURL, s.apiKey, email, password)
	track("session", "signup", err)
	if err != nil {
		return nil, err
	}
	return s.install(ar)
}

// install builds the identity from an auth response, makes it current,
// arms the expiry timer, and persists the blob.
func (s *SessionStore) install(ar *api.AuthResponse) (*Identity, error) {
	lifetime, err := ar.TokenLifetime()
	if err != nil {
		return nil, err
	}
	id := &types.Identity{
		UserID:       ar.LocalID,
		Email:        ar.Email,
		Token:        ar.IDToken,
		TokenExpiry:  s.clock.Now().Add(lifetime),
		RefreshToken: ar.RefreshToken,
	}
	s.setIdentity(id)
	s.armTimer(lifetime)

	blob, err := json.Marshal(storedAuth{
		UserID:              id.UserID,
		Token:               id.Token,
		TokenExpirationDate: id.TokenExpiry.Format(time.RFC3339),
		Email:               id.Email,
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(authDataKey, string(blob)); err != nil {
		return nil, err
	}
	out := *id
	return &out, nil
}

// RestoreSession reconstructs the identity from the persisted blob.
// It returns (false, nil) when no blob exists or the stored expiry is
// already in the past; in the latter case nothing is installed.
func (s *SessionStore) RestoreSession() (bool, error) {
	raw, err := s.store.Get(authDataKey)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var blob storedAuth
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return false, err
	}
	expiry, err := time.Parse(time.RFC3339, blob.TokenExpirationDate)
	if err != nil {
		return false, err
	}
	now := s.clock.Now()
	if !expiry.After(now) {
		return false, nil
	}
	s.setIdentity(&types.Identity{
		UserID:      blob.UserID,
		Email:       blob.Email,
		Token:       blob.Token,
		TokenExpiry: expiry,
	})
	s.armTimer(expiry.Sub(now))
	return true, nil
}

// Logout disarms any pending expiry timer, clears the identity, and
// deletes the persisted blob. Idempotent.
func (s *SessionStore) Logout() error {
	s.disarmTimer()
	s.setIdentity(nil)
	err := s.store.Remove(authDataKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

// Current returns a copy of the current identity, or nil.
func (s *SessionStore) Current() *Identity {
	id := s.identity.Get()
	if id == nil {
		return nil
	}
	out := *id
	return &out
}

// Authenticated reports whether an identity with a still-valid token is
// present.
func (s *SessionStore) Authenticated() bool {
	return s.identity.Get().Valid(s.clock.Now())
}

// UserID returns the current user id, or "" when no identity is present.
func (s *SessionStore) UserID() string {
	if id := s.identity.Get(); id != nil {
		return id.UserID
	}
	return ""
}

// Token returns the current token, or "" when no identity is present.
func (s *SessionStore) Token() string {
	if id := s.identity.Get(); id != nil {
		return id.Token
	}
	return ""
}

// Email returns the current email, or "" when no identity is present.
func (s *SessionStore) Email() string {
	if id := s.identity.Get(); id != nil {
		return id.Email
	}
	return ""
}

// Observe subscribes to identity changes; fn receives the current value
// immediately and nil after logout or expiry.
func (s *SessionStore) Observe(fn func(*Identity)) func() {
	return s.identity.Subscribe(fn)
}

// ObserveAuthenticated subscribes to the authenticated flag. The flag is
// distinct-until-changed, so a forced-navigation subscriber fires once per
// transition, not per identity update.
func (s *SessionStore) ObserveAuthenticated(fn func(bool)) func() {
	return s.authed.Subscribe(fn)
}

func (s *SessionStore) setIdentity(id *types.Identity) {
	s.identity.Set(id)
	s.authed.Set(id.Valid(s.clock.Now()))
}

// armTimer replaces any pending expiry timer with one firing after d.
func (s *SessionStore) armTimer(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.clock.AfterFunc(d, func() { _ = s.Logout() })
}

func (s *SessionStore) disarmTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// dispose cancels the pending expiry timer without touching the identity
// or the persisted blob. Called from Client.Close.
func (s *SessionStore) dispose() {
	s.disarmTimer()
}

// requireToken returns the current token, or ErrNotAuthenticated when the
// identity is absent or its token has lapsed.
func (s *SessionStore) requireToken() (string, error) {
	id := s.identity.Get()
	if !id.Valid(s.clock.Now()) {
		return "", ErrNotAuthenticated
	}
	return id.Token, nil
}

// requireUser returns the current user id and token. A missing user id is
// ErrNoIdentity; a missing or expired token is ErrNotAuthenticated.
func (s *SessionStore) requireUser() (userID, token string, err error) {
	id := s.identity.Get()
	if id == nil || id.UserID == "" {
		return "", "", ErrNoIdentity
	}
	if !id.Valid(s.clock.Now()) {
		return "", "", ErrNotAuthenticated
	}
	return id.UserID, id.Token, nil
}
