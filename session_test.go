package stayfinder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stayfinder/stayfinder-go/internal/storage"
)

var testEpoch = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func authBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/verifyPassword", "/signupNewUser":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"idToken":      "tok-1",
				"localId":      "u1",
				"email":        "a@b.c",
				"expiresIn":    "3600",
				"refreshToken": "r1",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLoginInstallsIdentityAndPersists(t *testing.T) {
	t.Parallel()
	srv := authBackend(t)
	defer srv.Close()
	clock := newFakeClock(testEpoch)
	c := newTestClient(t, srv.URL, clock)

	id, err := c.Session().Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if id.UserID != "u1" || id.Token != "tok-1" || !id.TokenExpiry.Equal(testEpoch.Add(time.Hour)) {
		t.Fatalf("unexpected identity %+v", id)
	}
	if !c.Session().Authenticated() {
		t.Fatal("expected authenticated after login")
	}
	raw, err := c.store.Get("authData")
	if err != nil {
		t.Fatalf("persisted blob missing: %v", err)
	}
	var blob map[string]string
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		t.Fatalf("blob not JSON: %v", err)
	}
	if blob["userId"] != "u1" || blob["token"] != "tok-1" || blob["email"] != "a@b.c" {
		t.Fatalf("unexpected blob %v", blob)
	}
	if _, err := time.Parse(time.RFC3339, blob["tokenExpirationDate"]); err != nil {
		t.Fatalf("expiry not RFC3339: %v", err)
	}
}

func TestRestoreSession(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testEpoch)

	t.Run("no blob", func(t *testing.T) {
		c := newTestClient(t, "http://unused.invalid", clock)
		ok, err := c.Session().RestoreSession()
		if err != nil || ok {
			t.Fatalf("expected soft false, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("expired blob", func(t *testing.T) {
		c := newTestClient(t, "http://unused.invalid", clock)
		blob, _ := json.Marshal(storedAuth{
			UserID: "u1", Token: "t1", Email: "a@b.c",
			TokenExpirationDate: testEpoch.Add(-time.Minute).Format(time.RFC3339),
		})
		_ = c.store.Set("authData", string(blob))
		ok, err := c.Session().RestoreSession()
		if err != nil || ok {
			t.Fatalf("expected soft false for past expiry, got ok=%v err=%v", ok, err)
		}
		if c.Session().Authenticated() || c.Session().Current() != nil {
			t.Fatal("expired restore must install nothing")
		}
	})

	t.Run("valid blob", func(t *testing.T) {
		c := newTestClient(t, "http://unused.invalid", clock)
		blob, _ := json.Marshal(storedAuth{
			UserID: "u1", Token: "t1", Email: "a@b.c",
			TokenExpirationDate: testEpoch.Add(time.Hour).Format(time.RFC3339),
		})
		_ = c.store.Set("authData", string(blob))

		var emissions []bool
		defer c.Session().ObserveAuthenticated(func(v bool) { emissions = append(emissions, v) })()

		ok, err := c.Session().RestoreSession()
		if err != nil || !ok {
			t.Fatalf("expected restore, got ok=%v err=%v", ok, err)
		}
		if got := c.Session().UserID(); got != "u1" {
			t.Fatalf("UserID after restore: %q", got)
		}
		if len(emissions) != 2 || emissions[0] != false || emissions[1] != true {
			t.Fatalf("expected [false true] emissions, got %v", emissions)
		}
	})
}

func TestExpiryTimerLogsOutExactlyOnce(t *testing.T) {
	t.Parallel()
	srv := authBackend(t)
	defer srv.Close()
	clock := newFakeClock(testEpoch)
	c := newTestClient(t, srv.URL, clock)

	if _, err := c.Session().Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	transitions := 0
	defer c.Session().ObserveAuthenticated(func(v bool) {
		if !v {
			transitions++
		}
	})()

	clock.Advance(59 * time.Minute)
	if !c.Session().Authenticated() {
		t.Fatal("token must still be valid before the lifetime elapses")
	}
	clock.Advance(2 * time.Minute)
	if c.Session().Authenticated() || c.Session().Current() != nil {
		t.Fatal("identity must be cleared after expiry")
	}
	if _, err := c.store.Get("authData"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("persisted blob must be removed on expiry, got %v", err)
	}
	clock.Advance(time.Hour)
	if transitions != 1 {
		t.Fatalf("expected exactly one forced logout, got %d", transitions)
	}
}

func TestReloginReplacesExpiryTimer(t *testing.T) {
	t.Parallel()
	srv := authBackend(t)
	defer srv.Close()
	clock := newFakeClock(testEpoch)
	c := newTestClient(t, srv.URL, clock)

	if _, err := c.Session().Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	clock.Advance(30 * time.Minute)
	if _, err := c.Session().Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	// The first timer would fire at +60m; only the second (at +90m) counts.
	clock.Advance(45 * time.Minute)
	if !c.Session().Authenticated() {
		t.Fatal("stale timer must not log the session out")
	}
	clock.Advance(20 * time.Minute)
	if c.Session().Authenticated() {
		t.Fatal("replacement timer must fire at the new expiry")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	t.Parallel()
	srv := authBackend(t)
	defer srv.Close()
	clock := newFakeClock(testEpoch)
	c := newTestClient(t, srv.URL, clock)

	if err := c.Session().Logout(); err != nil {
		t.Fatalf("logout with no session: %v", err)
	}
	if _, err := c.Session().Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := c.Session().Logout(); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if err := c.Session().Logout(); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if c.Session().Current() != nil || c.Session().Token() != "" {
		t.Fatal("logout must clear the identity")
	}
}

func TestAuthenticatedSignalIsDistinct(t *testing.T) {
	t.Parallel()
	clock := newFakeClock(testEpoch)
	c := newTestClient(t, "http://unused.invalid", clock)

	count := 0
	defer c.Session().ObserveAuthenticated(func(bool) { count++ })()

	seedIdentity(c, "u1", "t1", testEpoch.Add(time.Hour))
	seedIdentity(c, "u1", "t2", testEpoch.Add(2*time.Hour)) // still authenticated
	if count != 2 {
		t.Fatalf("expected initial + one transition, got %d emissions", count)
	}
}
