package session

import (
	"context"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultRefreshInterval stays under the backend's ~15 minute token expiry.
const DefaultRefreshInterval = 14 * time.Minute

// expiryMargin is how far ahead of a token's exp claim the refresher fires.
const expiryMargin = time.Minute

// Refresher renews the session token in the background so interactive calls
// never run against an expired token. It stops itself as soon as the session
// is gone, and must be cancelled via context when the owning scope ends.
type Refresher struct {
	store    *Store
	interval time.Duration
}

// NewRefresher builds a refresher for store. A non-positive interval selects
// the default.
func NewRefresher(store *Store, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{store: store, interval: interval}
}

// Run blocks until ctx is cancelled or the session ends. The cadence
// shortens when the current token expires sooner than the fixed interval.
func (r *Refresher) Run(ctx context.Context) {
	for {
		timer := time.NewTimer(r.nextWait())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if !r.store.Authenticated() {
			return
		}
		if err := r.store.Refresh(ctx); err != nil {
			// Refresh already tore the session down; acting again on a
			// logged-out session would be wrong.
			log.Printf("[session] background refresh failed: %v", err)
			return
		}
	}
}

func (r *Refresher) nextWait() time.Duration {
	wait := r.interval
	if exp, ok := tokenExpiry(r.store.creds.Token()); ok {
		if until := time.Until(exp) - expiryMargin; until > 0 && until < wait {
			wait = until
		}
	}
	return wait
}

// tokenExpiry reads the exp claim without verifying the signature. The
// client holds no key material and only needs a scheduling hint; the server
// remains the authority on validity.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
