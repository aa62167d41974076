package tui

import (
	"sync"

	"github.com/tinybio/linkdeck/internal/types"
)

// CategoryDetailState encapsulates the category drill-down. Child
// articles are fetched lazily when the detail opens and the cache is
// dropped when it closes, so reopening always shows fresh data.
type CategoryDetailState struct {
	mu sync.RWMutex

	category   *types.Category
	articles   []types.Article
	loaded     bool
	generation int
}

// NewCategoryDetailState creates a new detail state
func NewCategoryDetailState() *CategoryDetailState {
	return &CategoryDetailState{}
}

// Open targets a category and bumps the fetch generation
func (s *CategoryDetailState) Open(cat types.Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.category = &cat
	s.articles = nil
	s.loaded = false
	s.generation++
	return s.generation
}

// Category returns the category being inspected, or nil when closed
func (s *CategoryDetailState) Category() *types.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

// ApplyResult installs the child articles, discarding stale
// generations and results that arrive after Close.
func (s *CategoryDetailState) ApplyResult(generation int, articles []types.Article) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation || s.category == nil {
		return false
	}
	s.articles = articles
	s.loaded = true
	return true
}

// Articles returns the cached child articles
func (s *CategoryDetailState) Articles() []types.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	articles := make([]types.Article, len(s.articles))
	copy(articles, s.articles)
	return articles
}

// IsLoaded returns whether the child fetch completed
func (s *CategoryDetailState) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Close drops the cache. The generation still advances so an in-flight
// fetch result is rejected on arrival.
func (s *CategoryDetailState) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.category = nil
	s.articles = nil
	s.loaded = false
	s.generation++
}
