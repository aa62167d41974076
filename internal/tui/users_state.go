package tui

import (
	"sync"

	"github.com/tinybio/linkdeck/internal/listview"
	"github.com/tinybio/linkdeck/internal/types"
)

// userDescriptor wires the user collection into the list pipeline
func userDescriptor() listview.Descriptor[types.User] {
	return listview.Descriptor[types.User]{
		ID: func(u types.User) string { return u.ID },
		SearchText: func(u types.User) []string {
			return []string{u.Name, u.Email}
		},
		SortKeys: map[string]func(types.User) listview.Value{
			"name":      func(u types.User) listview.Value { return listview.StringValue(u.Name) },
			"email":     func(u types.User) listview.Value { return listview.StringValue(u.Email) },
			"linktrees": func(u types.User) listview.Value { return listview.NumberValue(int64(u.Count.Linktrees)) },
			"createdAt": func(u types.User) listview.Value { return listview.TimeValue(u.CreatedAt) },
		},
	}
}

// UsersState encapsulates the users screen state. The collection is
// fetched whole and paginated client-side.
type UsersState struct {
	mu sync.RWMutex

	list       *listview.State[types.User]
	loaded     bool
	generation int
}

// NewUsersState creates a new users screen state
func NewUsersState(perPage int) *UsersState {
	list := listview.NewState(userDescriptor(), perPage)
	list.SetSort("name", listview.Ascending)
	return &UsersState{list: list}
}

// List returns the underlying list state
func (s *UsersState) List() *listview.State[types.User] {
	return s.list
}

// IsLoaded returns whether at least one fetch completed
func (s *UsersState) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// BeginFetch bumps the fetch generation and returns it. Responses
// carry the generation back so stale ones can be discarded.
func (s *UsersState) BeginFetch() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// ApplyResult installs a fetch result. It returns false, leaving the
// state untouched, when a newer fetch has started since.
func (s *UsersState) ApplyResult(generation int, users []types.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}
	s.list.SetItems(users)
	s.loaded = true
	return true
}

// Reset clears the loaded flag so the next visit refetches
func (s *UsersState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
}
