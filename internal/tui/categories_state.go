package tui

import (
	"sync"

	"github.com/tinybio/linkdeck/internal/listview"
	"github.com/tinybio/linkdeck/internal/types"
)

// categoryDescriptor wires the category collection into the list pipeline
func categoryDescriptor() listview.Descriptor[types.Category] {
	return listview.Descriptor[types.Category]{
		ID: func(c types.Category) string { return c.ID },
		SearchText: func(c types.Category) []string {
			return []string{c.Name}
		},
		SortKeys: map[string]func(types.Category) listview.Value{
			"name":      func(c types.Category) listview.Value { return listview.StringValue(c.Name) },
			"usage":     func(c types.Category) listview.Value { return listview.NumberValue(int64(c.Count.Total())) },
			"createdAt": func(c types.Category) listview.Value { return listview.TimeValue(c.CreatedAt) },
		},
	}
}

// CategoriesState encapsulates the categories screen state
type CategoriesState struct {
	mu sync.RWMutex

	list       *listview.State[types.Category]
	loaded     bool
	generation int
}

// NewCategoriesState creates a new categories screen state
func NewCategoriesState(perPage int) *CategoriesState {
	list := listview.NewState(categoryDescriptor(), perPage)
	list.SetSort("name", listview.Ascending)
	return &CategoriesState{list: list}
}

// List returns the underlying list state
func (s *CategoriesState) List() *listview.State[types.Category] {
	return s.list
}

// IsLoaded returns whether at least one fetch completed
func (s *CategoriesState) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// BeginFetch bumps the fetch generation and returns it
func (s *CategoriesState) BeginFetch() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// ApplyResult installs a fetch result, discarding stale generations
func (s *CategoriesState) ApplyResult(generation int, cats []types.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}
	s.list.SetItems(cats)
	s.loaded = true
	return true
}

// Reset clears the loaded flag so the next visit refetches
func (s *CategoriesState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
}
