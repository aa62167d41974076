// Package listview implements the in-memory list pipeline shared by
// the admin screens: free-text filter, keyed sort, pagination and a
// selection cursor. It is pure computation over an already-fetched
// collection; fetching and errors belong to the caller.
package listview

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// SortOrder is the direction of a keyed sort.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// Toggle returns the opposite direction
func (o SortOrder) Toggle() SortOrder {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// Value is a comparable sort key extracted from an entity: either a
// case-folded string or a number (counts, millisecond timestamps).
type Value struct {
	str     string
	num     int64
	numeric bool
}

// StringValue builds a case-insensitive string sort key
func StringValue(s string) Value {
	return Value{str: strings.ToLower(s)}
}

// NumberValue builds a numeric sort key
func NumberValue(n int64) Value {
	return Value{num: n, numeric: true}
}

// TimeValue builds a millisecond-timestamp sort key
func TimeValue(t time.Time) Value {
	return Value{num: t.UnixMilli(), numeric: true}
}

// Compare returns -1, 0 or +1. Unlike the historical UI comparator it
// reports true equality, so ties are resolved explicitly by the caller
// instead of depending on sort internals.
func (v Value) Compare(o Value) int {
	if v.numeric || o.numeric {
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
		return 0
	}
	return strings.Compare(v.str, o.str)
}

// Descriptor tells the generic pipeline how to read one entity type.
type Descriptor[T any] struct {
	// ID identifies the entity; used as the deterministic tie-break.
	ID func(T) string
	// SearchText returns the designated free-text filter fields.
	SearchText func(T) []string
	// SortKeys maps a sort key name to its extractor.
	SortKeys map[string]func(T) Value
}

// Filter keeps items where the lower-cased query is a substring of at
// least one designated text field. An empty query is the identity.
func Filter[T any](items []T, desc Descriptor[T], query string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		result := make([]T, len(items))
		copy(result, items)
		return result
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range desc.SearchText(item) {
			if strings.Contains(strings.ToLower(field), query) {
				result = append(result, item)
				break
			}
		}
	}
	return result
}

// Sort orders items by the named key. Ties on the primary key always
// break on entity ID ascending, in both directions, so a descending
// sort is the exact reverse of the ascending one. Unknown keys leave
// the input order untouched.
func Sort[T any](items []T, desc Descriptor[T], key string, order SortOrder) []T {
	result := make([]T, len(items))
	copy(result, items)

	extract, ok := desc.SortKeys[key]
	if !ok || key == "" {
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		c := extract(result[i]).Compare(extract(result[j]))
		if c == 0 {
			// ID tie-break is direction-independent so that toggling
			// the direction reverses the slice exactly.
			c = strings.Compare(desc.ID(result[i]), desc.ID(result[j]))
		}
		if order == Descending {
			return c > 0
		}
		return c < 0
	})

	return result
}

// Paginate returns the 1-based page window of at most perPage items
func Paginate[T any](items []T, page, perPage int) []T {
	if perPage <= 0 || page <= 0 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns ceil(n/perPage); an empty collection has 1 page
// so the pager never shows "page 1 of 0".
func TotalPages(n, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	pages := (n + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// State owns the collection plus the transient UI inputs for one
// mounted screen. Mutation always happens through a full SetItems
// (re-fetch), never by patching a single record in place.
type State[T any] struct {
	mu sync.RWMutex

	desc Descriptor[T]

	items       []T
	searchQuery string
	sortKey     string
	sortOrder   SortOrder
	page        int
	perPage     int
	index       int // selection cursor within the visible page
}

// NewState creates a list state with the given entity descriptor
func NewState[T any](desc Descriptor[T], perPage int) *State[T] {
	if perPage <= 0 {
		perPage = 10
	}
	return &State[T]{
		desc:    desc,
		items:   []T{},
		page:    1,
		perPage: perPage,
	}
}

// SetItems replaces the collection after a (re-)fetch. The current
// page is clamped rather than reset so a delete on the last page lands
// on the new last page instead of an empty one.
func (s *State[T]) SetItems(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]T, len(items))
	copy(s.items, items)
	s.clampLocked()
}

// Items returns a copy of the raw collection
func (s *State[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]T, len(s.items))
	copy(result, s.items)
	return result
}

// SetSearchQuery sets the filter text and resets to page 1
func (s *State[T]) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if query == s.searchQuery {
		return
	}
	s.searchQuery = query
	s.page = 1
	s.index = 0
}

// SearchQuery returns the current filter text
func (s *State[T]) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// ToggleSort sets the sort key, flipping the direction when the key is
// already active. Either change resets to page 1.
func (s *State[T]) ToggleSort(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sortKey == key {
		s.sortOrder = s.sortOrder.Toggle()
	} else {
		s.sortKey = key
		s.sortOrder = Ascending
	}
	s.page = 1
	s.index = 0
}

// SetSort sets key and direction explicitly, resetting to page 1
func (s *State[T]) SetSort(key string, order SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sortKey == key && s.sortOrder == order {
		return
	}
	s.sortKey = key
	s.sortOrder = order
	s.page = 1
	s.index = 0
}

// Sort returns the active sort key and direction
func (s *State[T]) Sort() (string, SortOrder) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortKey, s.sortOrder
}

// Page returns the current 1-based page
func (s *State[T]) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// PerPage returns the page size
func (s *State[T]) PerPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.perPage
}

// SetPage moves to the given page, clamped to the valid range
func (s *State[T]) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
	s.clampLocked()
	s.index = 0
}

// NextPage advances one page (clamped)
func (s *State[T]) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page++
	s.clampLocked()
	s.index = 0
}

// PrevPage goes back one page (clamped)
func (s *State[T]) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page--
	s.clampLocked()
	s.index = 0
}

// Visible derives the rendered window: filter, then sort, then slice.
// The order matters; sorting the unfiltered set first could disagree
// on tie-break visibility.
func (s *State[T]) Visible() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Paginate(s.derivedLocked(), s.page, s.perPage)
}

// TotalItems returns the filtered collection size
func (s *State[T]) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(Filter(s.items, s.desc, s.searchQuery))
}

// TotalPages returns the page count for the filtered collection
func (s *State[T]) TotalPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TotalPages(len(Filter(s.items, s.desc, s.searchQuery)), s.perPage)
}

// Navigate moves the selection cursor by delta within the visible
// page, wrapping around at either end.
func (s *State[T]) Navigate(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := Paginate(s.derivedLocked(), s.page, s.perPage)
	if len(visible) == 0 {
		s.index = 0
		return
	}

	s.index += delta
	if s.index < 0 {
		s.index = len(visible) - 1
	} else if s.index >= len(visible) {
		s.index = 0
	}
}

// Index returns the selection cursor within the visible page
func (s *State[T]) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Selected returns the entity under the cursor, if any
func (s *State[T]) Selected() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	visible := Paginate(s.derivedLocked(), s.page, s.perPage)
	if s.index < 0 || s.index >= len(visible) {
		return zero, false
	}
	return visible[s.index], true
}

func (s *State[T]) derivedLocked() []T {
	filtered := Filter(s.items, s.desc, s.searchQuery)
	return Sort(filtered, s.desc, s.sortKey, s.sortOrder)
}

func (s *State[T]) clampLocked() {
	pages := TotalPages(len(Filter(s.items, s.desc, s.searchQuery)), s.perPage)
	if s.page > pages {
		s.page = pages
	}
	if s.page < 1 {
		s.page = 1
	}
	if s.index < 0 {
		s.index = 0
	}
}
