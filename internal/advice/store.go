// Package advice maintains the client's view of advice threads and the
// operations that reconcile server responses into it.
package advice

import (
	"sort"
	"sync"

	model "github.com/mymentor/mymentor-go/internal/model/advice"
)

// Store keeps the ordered thread list for the active advisor context plus
// the current selection. Entries are unique by advice id.
type Store struct {
	mu       sync.RWMutex
	threads  []model.Thread
	selected int // advice id, 0 when nothing is selected
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a freshly loaded thread set, dropping duplicate ids
// (first occurrence wins). A selection pointing at a thread no longer
// present is cleared.
func (s *Store) Replace(threads []model.Thread) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int]struct{}, len(threads))
	next := make([]model.Thread, 0, len(threads))
	for _, t := range threads {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		next = append(next, t)
	}
	s.threads = next

	if s.selected != 0 {
		if _, ok := seen[s.selected]; !ok {
			s.selected = 0
		}
	}
}

// Upsert merges one thread: replaced in place when the id is known, prepended
// otherwise. Create and update outcomes both flow through here, so callers
// never need to know which case occurred.
func (s *Store) Upsert(t model.Thread) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.threads {
		if s.threads[i].ID == t.ID {
			s.threads[i] = t
			return
		}
	}
	s.threads = append([]model.Thread{t}, s.threads...)
}

// Remove drops the thread with the given id, clearing the selection if it
// pointed there. Removing an absent id is a no-op.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.threads {
		if s.threads[i].ID == id {
			s.threads = append(s.threads[:i], s.threads[i+1:]...)
			break
		}
	}
	if s.selected == id {
		s.selected = 0
	}
}

// Sorted returns the presentation order: highest id first, independent of
// insertion order.
func (s *Store) Sorted() []model.Thread {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Thread, len(s.threads))
	copy(out, s.threads)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Len reports the number of threads held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.threads)
}

// Get returns the thread with the given id.
func (s *Store) Get(id int) (model.Thread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(id)
}

// Select marks the thread the chat continues in. Selecting an unknown id
// reports false and leaves the selection unchanged.
func (s *Store) Select(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.find(id); !ok {
		return false
	}
	s.selected = id
	return true
}

// ClearSelection returns the chat to "new thread" mode.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selected = 0
	s.mu.Unlock()
}

// Selected returns the active thread, if any.
func (s *Store) Selected() (model.Thread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected == 0 {
		return model.Thread{}, false
	}
	return s.find(s.selected)
}

func (s *Store) find(id int) (model.Thread, bool) {
	for _, t := range s.threads {
		if t.ID == id {
			return t, true
		}
	}
	return model.Thread{}, false
}
