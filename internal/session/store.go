// Package session manages the authenticated MyMentor session: durable
// credentials, the in-memory user record, and token refresh.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mymentor/mymentor-go/internal/api"
	"github.com/mymentor/mymentor-go/internal/model/user"
)

// GeneralAsesorName is the well-known professional backing the default chat
// context when no advisor is explicitly selected.
const GeneralAsesorName = "Consulta General"

var (
	// ErrBadCredentials reports a rejected login attempt.
	ErrBadCredentials = errors.New("invalid email or password")

	// ErrNotAuthenticated reports an operation that needs a live session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

type loginResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	Token   string `json:"token"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

// Store owns session state. Construct one per client; nothing here is
// global, so isolated sessions can exist side by side in tests.
type Store struct {
	client *api.Client
	creds  *Credentials

	mu            sync.RWMutex
	user          *user.User
	authenticated bool

	refreshGroup singleflight.Group
}

// NewStore wires the store to its API client and credential storage, and
// installs the teardown hook so auth failures anywhere clear the session.
func NewStore(client *api.Client, creds *Credentials) *Store {
	s := &Store{client: client, creds: creds}
	client.OnAuthFailure(s.teardown)
	return s
}

// Login authenticates and loads the full user record. A user-fetch failure
// fails the whole login; callers never observe a half-built session.
func (s *Store) Login(ctx context.Context, email, password string) error {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	// Login carries no session: a 401 here means the credentials were
	// rejected, and whatever session is already persisted stays intact.
	var resp loginResponse
	if err := s.client.DoAnonymous(ctx, http.MethodPost, "/login", payload, &resp); err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) &&
			(httpErr.Status == http.StatusUnauthorized || httpErr.Status == http.StatusForbidden) {
			return ErrBadCredentials
		}
		return err
	}
	if resp.Token == "" {
		return fmt.Errorf("login: empty token in response")
	}

	if err := s.creds.Save(resp.Token, resp.Email); err != nil {
		return err
	}
	if err := s.loadUser(ctx, resp.Email); err != nil {
		s.teardown()
		return fmt.Errorf("load user after login: %w", err)
	}
	return nil
}

// Logout tells the backend best-effort and always clears local state,
// regardless of the call's outcome. Idempotent.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Do(ctx, http.MethodPost, "/logout", nil, nil); err != nil {
		log.Printf("[session] logout call failed: %v", err)
	}
	s.teardown()
}

// Bootstrap restores a persisted session at process start. Without stored
// credentials it is a no-op; with them, a failed refresh tears down exactly
// like a logout.
func (s *Store) Bootstrap(ctx context.Context) error {
	if s.creds.Token() == "" || s.creds.Email() == "" {
		return nil
	}
	return s.Refresh(ctx)
}

// Refresh renews the token and re-fetches the user. Concurrent callers share
// a single in-flight refresh.
func (s *Store) Refresh(ctx context.Context) error {
	_, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		return nil, s.refresh(ctx)
	})
	return err
}

func (s *Store) refresh(ctx context.Context) error {
	email := s.creds.Email()
	if email == "" {
		return ErrNotAuthenticated
	}

	var resp refreshResponse
	if err := s.client.Do(ctx, http.MethodPost, "/refresh-token", nil, &resp); err != nil {
		s.teardown()
		return fmt.Errorf("refresh token: %w", err)
	}
	if resp.Token == "" {
		s.teardown()
		return fmt.Errorf("refresh token: empty token in response")
	}

	if err := s.creds.Save(resp.Token, email); err != nil {
		s.teardown()
		return err
	}
	if err := s.loadUser(ctx, email); err != nil {
		s.teardown()
		return fmt.Errorf("reload user after refresh: %w", err)
	}
	return nil
}

// loadUser fetches the account by email and flips the session to
// authenticated.
func (s *Store) loadUser(ctx context.Context, email string) error {
	var resp user.Response
	if err := s.client.Do(ctx, http.MethodGet, "/users/email/"+url.PathEscape(email), nil, &resp); err != nil {
		return err
	}

	s.mu.Lock()
	u := resp.Usuario
	s.user = &u
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// teardown unconditionally clears persisted credentials and in-memory state.
func (s *Store) teardown() {
	if err := s.creds.Clear(); err != nil {
		log.Printf("[session] clear credentials: %v", err)
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()
}

// Authenticated reports whether a user is loaded and a token persisted.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated && s.user != nil && s.creds.Token() != ""
}

// User returns a copy of the current user, if one is loaded.
func (s *Store) User() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return user.User{}, false
	}
	return *s.user, true
}

// GeneralAsesorID finds the default advisor assignment on the current user.
func (s *Store) GeneralAsesorID() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0, false
	}
	for _, a := range s.user.Asesores {
		if a.Professional.Name == GeneralAsesorName {
			return a.ID, true
		}
	}
	return 0, false
}
