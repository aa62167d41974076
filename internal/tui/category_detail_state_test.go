package tui

import (
	"testing"

	"github.com/tinybio/linkdeck/internal/types"
)

func TestCategoryDetailState_OpenApplyClose(t *testing.T) {
	s := NewCategoryDetailState()

	gen := s.Open(types.Category{ID: "c1", Name: "Food"})
	if s.IsLoaded() {
		t.Error("Expected detail to start unloaded")
	}

	articles := []types.Article{{ID: "a1", Title: "Post"}}
	if !s.ApplyResult(gen, articles) {
		t.Fatal("Expected result to be applied")
	}
	if len(s.Articles()) != 1 {
		t.Errorf("Expected 1 cached article, got %d", len(s.Articles()))
	}

	s.Close()
	if s.Category() != nil {
		t.Error("Expected category to be cleared on close")
	}
	if len(s.Articles()) != 0 {
		t.Error("Expected cache to be dropped on close")
	}
}

func TestCategoryDetailState_LateResultAfterCloseRejected(t *testing.T) {
	s := NewCategoryDetailState()

	gen := s.Open(types.Category{ID: "c1", Name: "Food"})
	s.Close()

	if s.ApplyResult(gen, []types.Article{{ID: "a1"}}) {
		t.Error("Expected a result arriving after close to be rejected")
	}
}

func TestCategoryDetailState_ReopenRefetches(t *testing.T) {
	s := NewCategoryDetailState()

	first := s.Open(types.Category{ID: "c1"})
	s.ApplyResult(first, []types.Article{{ID: "a1"}})
	s.Close()

	second := s.Open(types.Category{ID: "c1"})
	if second == first {
		t.Error("Expected a fresh generation on reopen")
	}
	if s.IsLoaded() {
		t.Error("Expected reopen to start a fresh fetch, not reuse the cache")
	}
}
