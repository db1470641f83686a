package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/mymentor/mymentor-go/internal/api"
	"github.com/mymentor/mymentor-go/internal/model/user"
)

// DefaultPageSize matches the advisor screen's default.
const DefaultPageSize = 10

// NewAdvisor is the professional create/update payload.
type NewAdvisor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AreaID      int    `json:"area_id"`
}

// Page is one page of the advisor catalog.
type Page struct {
	Items      []user.Professional
	TotalPages int
}

type advisorPageResponse struct {
	Professionals []user.Professional `json:"professionals"`
	TotalPages    int                 `json:"total_pages"`
	Mensaje       string              `json:"mensaje"`
}

type advisorResponse struct {
	Professional user.Professional `json:"professional"`
	Mensaje      string            `json:"mensaje"`
}

type areasResponse struct {
	Areas   []user.Area `json:"areas"`
	Mensaje string      `json:"mensaje"`
}

// Advisors is the paginated professional catalog with the same optimistic
// patching policy as Users. The loaded page keeps its size constant: create
// prepends and truncates, delete filters out.
type Advisors struct {
	client *api.Client

	mu       sync.RWMutex
	items    []user.Professional
	pageSize int
}

// NewAdvisors builds an empty collection over the given client.
func NewAdvisors(client *api.Client) *Advisors {
	return &Advisors{client: client}
}

// FetchPage loads one catalog page. Pages are 1-based.
func (a *Advisors) FetchPage(ctx context.Context, page, size int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	var resp advisorPageResponse
	path := fmt.Sprintf("/professionals/page/%d?size=%d", page, size)
	if err := a.client.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return Page{}, fmt.Errorf("fetch advisors page %d: %w", page, err)
	}

	a.mu.Lock()
	a.items = resp.Professionals
	a.pageSize = size
	a.mu.Unlock()
	return Page{Items: a.List(), TotalPages: resp.TotalPages}, nil
}

// List returns a copy of the loaded page.
func (a *Advisors) List() []user.Professional {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]user.Professional, len(a.items))
	copy(out, a.items)
	return out
}

// Areas lists the flat area catalog.
func (a *Advisors) Areas(ctx context.Context) ([]user.Area, error) {
	var resp areasResponse
	if err := a.client.Do(ctx, http.MethodGet, "/areas", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch areas: %w", err)
	}
	return resp.Areas, nil
}

// Create posts a new professional and prepends it to the loaded page,
// truncating so the visible page size stays constant.
func (a *Advisors) Create(ctx context.Context, na NewAdvisor) (user.Professional, error) {
	if strings.TrimSpace(na.Name) == "" {
		return user.Professional{}, errors.New("advisor name is required")
	}

	var resp advisorResponse
	if err := a.client.Do(ctx, http.MethodPost, "/professional", na, &resp); err != nil {
		return user.Professional{}, fmt.Errorf("create advisor: %w", err)
	}

	a.mu.Lock()
	a.items = append([]user.Professional{resp.Professional}, a.items...)
	if a.pageSize > 0 && len(a.items) > a.pageSize {
		a.items = a.items[:a.pageSize]
	}
	a.mu.Unlock()
	return resp.Professional, nil
}

// Update replaces the professional server-side, then by id locally.
func (a *Advisors) Update(ctx context.Context, id int, na NewAdvisor) (user.Professional, error) {
	if strings.TrimSpace(na.Name) == "" {
		return user.Professional{}, errors.New("advisor name is required")
	}

	var resp advisorResponse
	if err := a.client.Do(ctx, http.MethodPut, "/professional/"+strconv.Itoa(id), na, &resp); err != nil {
		return user.Professional{}, fmt.Errorf("update advisor %d: %w", id, err)
	}

	a.mu.Lock()
	for i := range a.items {
		if a.items[i].ID == resp.Professional.ID {
			a.items[i] = resp.Professional
			break
		}
	}
	a.mu.Unlock()
	return resp.Professional, nil
}

// Delete removes the professional server-side, then filters it out locally.
func (a *Advisors) Delete(ctx context.Context, id int) error {
	if err := a.client.Do(ctx, http.MethodDelete, "/professional/"+strconv.Itoa(id), nil, nil); err != nil {
		return fmt.Errorf("delete advisor %d: %w", id, err)
	}

	a.mu.Lock()
	next := make([]user.Professional, 0, len(a.items))
	for _, it := range a.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	a.items = next
	a.mu.Unlock()
	return nil
}
