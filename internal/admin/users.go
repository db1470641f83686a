// Package admin holds the management collections behind the users and
// advisors screens. Both apply optimistic local patches after a successful
// mutation instead of reloading, trading staleness under concurrent edits
// for responsiveness.
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/mymentor/mymentor-go/internal/api"
	"github.com/mymentor/mymentor-go/internal/model/user"
)

// MinPasswordLen mirrors the backend's password policy. Violations are
// rejected before any request is made.
const MinPasswordLen = 8

var (
	// ErrMissingFields reports a create/update payload with blank required
	// fields.
	ErrMissingFields = errors.New("name, last name and email are required")

	// ErrShortPassword reports a password below the minimum length.
	ErrShortPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLen)
)

// NewUser is the create payload; the server assigns the uuid.
type NewUser struct {
	Name        string `json:"name"`
	LastName    string `json:"last_name"`
	PhoneNumber int64  `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Admin       bool   `json:"admin"`
	Enabled     bool   `json:"enabled"`
}

// Users is the admin user list.
type Users struct {
	client *api.Client

	mu    sync.RWMutex
	items []user.User
}

// NewUsers builds an empty collection over the given client.
func NewUsers(client *api.Client) *Users {
	return &Users{client: client}
}

// FetchAll loads the full user list, replacing local state.
func (u *Users) FetchAll(ctx context.Context) ([]user.User, error) {
	var resp user.ListResponse
	if err := u.client.Do(ctx, http.MethodGet, "/users", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}

	u.mu.Lock()
	u.items = resp.Usuarios
	u.mu.Unlock()
	return u.List(), nil
}

// List returns a copy of the loaded users.
func (u *Users) List() []user.User {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]user.User, len(u.items))
	copy(out, u.items)
	return out
}

// Create validates locally, posts, and appends the created record.
func (u *Users) Create(ctx context.Context, nu NewUser) (user.User, error) {
	if err := validateNewUser(nu); err != nil {
		return user.User{}, err
	}

	var resp user.Response
	if err := u.client.Do(ctx, http.MethodPost, "/users", nu, &resp); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	u.mu.Lock()
	u.items = append(u.items, resp.Usuario)
	u.mu.Unlock()
	return resp.Usuario, nil
}

// Update replaces the record server-side, then by uuid in the loaded list.
func (u *Users) Update(ctx context.Context, updated user.User) (user.User, error) {
	if updated.UUID == "" {
		return user.User{}, errors.New("user uuid is required")
	}
	if strings.TrimSpace(updated.Name) == "" || strings.TrimSpace(updated.Email) == "" {
		return user.User{}, ErrMissingFields
	}

	var resp user.Response
	if err := u.client.Do(ctx, http.MethodPut, "/users/"+updated.UUID, updated, &resp); err != nil {
		return user.User{}, fmt.Errorf("update user %s: %w", updated.UUID, err)
	}

	u.mu.Lock()
	for i := range u.items {
		if u.items[i].UUID == resp.Usuario.UUID {
			u.items[i] = resp.Usuario
			break
		}
	}
	u.mu.Unlock()
	return resp.Usuario, nil
}

// Delete removes the record server-side, then filters it out locally.
func (u *Users) Delete(ctx context.Context, uuid string) error {
	if err := u.client.Do(ctx, http.MethodDelete, "/users/"+uuid, nil, nil); err != nil {
		return fmt.Errorf("delete user %s: %w", uuid, err)
	}

	u.mu.Lock()
	next := make([]user.User, 0, len(u.items))
	for _, it := range u.items {
		if it.UUID != uuid {
			next = append(next, it)
		}
	}
	u.items = next
	u.mu.Unlock()
	return nil
}

func validateNewUser(nu NewUser) error {
	if strings.TrimSpace(nu.Name) == "" || strings.TrimSpace(nu.LastName) == "" ||
		strings.TrimSpace(nu.Email) == "" {
		return ErrMissingFields
	}
	if len(nu.Password) < MinPasswordLen {
		return ErrShortPassword
	}
	return nil
}
