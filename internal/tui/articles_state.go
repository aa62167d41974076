package tui

import (
	"sync"

	"github.com/tinybio/linkdeck/internal/api"
	"github.com/tinybio/linkdeck/internal/types"
)

// ArticlesState encapsulates the articles screen state. Unlike users
// and categories, articles are paginated by the server: every query
// change triggers a refetch instead of a local recompute.
type ArticlesState struct {
	mu sync.RWMutex

	items      []types.Article
	pagination types.Pagination
	index      int
	query      api.ArticleQuery
	loaded     bool
	generation int
}

// NewArticlesState creates a new articles screen state
func NewArticlesState(perPage int) *ArticlesState {
	return &ArticlesState{
		query: api.ArticleQuery{Page: 1, Limit: perPage},
	}
}

// Query returns the current server-side query
func (s *ArticlesState) Query() api.ArticleQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// IsLoaded returns whether at least one fetch completed
func (s *ArticlesState) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// BeginFetch bumps the fetch generation and returns it together with
// the query to send.
func (s *ArticlesState) BeginFetch() (int, api.ArticleQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation, s.query
}

// ApplyResult installs one server page, discarding stale generations
func (s *ArticlesState) ApplyResult(generation int, coll *types.Collection[types.Article]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}

	s.items = coll.Items
	if coll.Pagination != nil {
		s.pagination = *coll.Pagination
	} else {
		s.pagination = types.Pagination{Page: 1, Total: len(coll.Items), Pages: 1}
	}
	if s.index >= len(s.items) {
		s.index = 0
	}
	s.loaded = true
	return true
}

// Items returns the current page
func (s *ArticlesState) Items() []types.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]types.Article, len(s.items))
	copy(items, s.items)
	return items
}

// Pagination returns the server paging metadata
func (s *ArticlesState) Pagination() types.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

// SetSearch updates the search term and resets to page 1
func (s *ArticlesState) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = term
	s.query.Page = 1
	s.index = 0
}

// CycleStatusFilter advances the status filter through
// all -> DRAFT -> PUBLISHED -> ARCHIVED -> all and resets to page 1.
func (s *ArticlesState) CycleStatusFilter() types.ArticleStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.query.Status {
	case "":
		s.query.Status = types.StatusDraft
	case types.StatusDraft:
		s.query.Status = types.StatusPublished
	case types.StatusPublished:
		s.query.Status = types.StatusArchived
	default:
		s.query.Status = ""
	}
	s.query.Page = 1
	s.index = 0
	return s.query.Status
}

// SetCategoryFilter filters by category id ("" clears) and resets to
// page 1.
func (s *ArticlesState) SetCategoryFilter(categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Category = categoryID
	s.query.Page = 1
	s.index = 0
}

// NextPage advances one page, bounded by the server page count. It
// reports whether the page actually changed.
func (s *ArticlesState) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.query.Page >= s.pagination.Pages {
		return false
	}
	s.query.Page++
	s.index = 0
	return true
}

// PrevPage goes back one page, reporting whether the page changed
func (s *ArticlesState) PrevPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.query.Page <= 1 {
		return false
	}
	s.query.Page--
	s.index = 0
	return true
}

// SetPage jumps to a page, clamped to the known range
func (s *ArticlesState) SetPage(page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if s.pagination.Pages > 0 && page > s.pagination.Pages {
		page = s.pagination.Pages
	}
	if page == s.query.Page {
		return false
	}
	s.query.Page = page
	s.index = 0
	return true
}

// Navigate moves the selection up or down with wraparound
func (s *ArticlesState) Navigate(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		s.index = 0
		return
	}
	s.index = (s.index + delta + len(s.items)) % len(s.items)
}

// Index returns the selected row index
func (s *ArticlesState) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Selected returns the selected article, or nil when the page is empty
func (s *ArticlesState) Selected() *types.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index < 0 || s.index >= len(s.items) {
		return nil
	}
	article := s.items[s.index]
	return &article
}

// Reset clears the loaded flag so the next visit refetches
func (s *ArticlesState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
}
