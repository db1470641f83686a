package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mymentor/mymentor-go/internal/api"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(10 * time.Minute).Truncate(time.Second)

	got, ok := tokenExpiry(signedToken(t, exp))
	if !ok {
		t.Fatal("expected exp claim to parse")
	}
	if !got.Equal(exp) {
		t.Fatalf("unexpected expiry: %v, want %v", got, exp)
	}

	if _, ok := tokenExpiry(""); ok {
		t.Fatal("empty token must not parse")
	}
	if _, ok := tokenExpiry("not.a.jwt"); ok {
		t.Fatal("garbage must not parse")
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{})
	signed, err := noExp.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, ok := tokenExpiry(signed); ok {
		t.Fatal("token without exp must report absent")
	}
}

func TestNextWaitShortensToTokenExpiry(t *testing.T) {
	creds, err := OpenCredentials(filepath.Join(t.TempDir(), "creds.db"))
	if err != nil {
		t.Fatalf("OpenCredentials err: %v", err)
	}
	defer creds.Close()

	store := NewStore(api.New("http://localhost:0", creds), creds)

	// Token expiring in 5m with a 1m margin should beat the 14m interval.
	if err := creds.Save(signedToken(t, time.Now().Add(5*time.Minute)), "a@x.dev"); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	r := NewRefresher(store, 0)
	wait := r.nextWait()
	if wait > 4*time.Minute+time.Second || wait < 3*time.Minute {
		t.Fatalf("wait not shortened to exp minus margin: %v", wait)
	}

	// An unparsable token falls back to the fixed interval.
	if err := creds.Save("opaque-token", "a@x.dev"); err != nil {
		t.Fatalf("Save err: %v", err)
	}
	if wait := r.nextWait(); wait != DefaultRefreshInterval {
		t.Fatalf("expected default interval, got %v", wait)
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	creds, err := OpenCredentials(filepath.Join(t.TempDir(), "creds.db"))
	if err != nil {
		t.Fatalf("OpenCredentials err: %v", err)
	}
	defer creds.Close()

	store := NewStore(api.New("http://localhost:0", creds), creds)
	r := NewRefresher(store, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunStopsWhenSessionGone(t *testing.T) {
	creds, err := OpenCredentials(filepath.Join(t.TempDir(), "creds.db"))
	if err != nil {
		t.Fatalf("OpenCredentials err: %v", err)
	}
	defer creds.Close()

	store := NewStore(api.New("http://localhost:0", creds), creds)
	r := NewRefresher(store, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	// The store never authenticated, so the first tick must end the loop.
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop for a logged-out session")
	}
}
