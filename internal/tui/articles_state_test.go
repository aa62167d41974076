package tui

import (
	"testing"

	"github.com/tinybio/linkdeck/internal/types"
)

func articlesPage(items int, page, pages, total int) *types.Collection[types.Article] {
	coll := &types.Collection[types.Article]{
		Pagination: &types.Pagination{Page: page, Limit: 10, Total: total, Pages: pages},
	}
	for i := 0; i < items; i++ {
		coll.Items = append(coll.Items, types.Article{ID: string(rune('a' + i)), Title: "Article"})
	}
	return coll
}

func TestArticlesState_SearchResetsPage(t *testing.T) {
	s := NewArticlesState(10)
	gen, _ := s.BeginFetch()
	s.ApplyResult(gen, articlesPage(10, 1, 3, 21))
	s.NextPage()

	s.SetSearch("go")

	query := s.Query()
	if query.Page != 1 {
		t.Errorf("Expected search to reset to page 1, got %d", query.Page)
	}
	if query.Search != "go" {
		t.Errorf("Expected search term, got %q", query.Search)
	}
}

func TestArticlesState_StatusFilterCycleResetsPage(t *testing.T) {
	s := NewArticlesState(10)
	gen, _ := s.BeginFetch()
	s.ApplyResult(gen, articlesPage(10, 1, 3, 21))
	s.NextPage()

	sequence := []types.ArticleStatus{
		types.StatusDraft, types.StatusPublished, types.StatusArchived, "",
	}
	for _, expected := range sequence {
		got := s.CycleStatusFilter()
		if got != expected {
			t.Errorf("Expected filter %q, got %q", expected, got)
		}
	}
	if s.Query().Page != 1 {
		t.Errorf("Expected filter change to reset to page 1, got %d", s.Query().Page)
	}
}

func TestArticlesState_PagingBoundedByServer(t *testing.T) {
	s := NewArticlesState(10)
	gen, _ := s.BeginFetch()
	s.ApplyResult(gen, articlesPage(10, 1, 2, 11))

	if !s.NextPage() {
		t.Error("Expected page 1 -> 2 to succeed")
	}
	if s.NextPage() {
		t.Error("Expected paging past the last server page to be refused")
	}
	if !s.PrevPage() {
		t.Error("Expected page 2 -> 1 to succeed")
	}
	if s.PrevPage() {
		t.Error("Expected paging before page 1 to be refused")
	}
}

func TestArticlesState_StaleResultDiscarded(t *testing.T) {
	s := NewArticlesState(10)

	oldGen, _ := s.BeginFetch()
	newGen, _ := s.BeginFetch()

	if s.ApplyResult(oldGen, articlesPage(3, 1, 1, 3)) {
		t.Error("Expected the superseded fetch to be discarded")
	}
	if s.IsLoaded() {
		t.Error("Expected state to stay unloaded after a stale result")
	}

	if !s.ApplyResult(newGen, articlesPage(5, 1, 1, 5)) {
		t.Error("Expected the current fetch to be applied")
	}
	if len(s.Items()) != 5 {
		t.Errorf("Expected 5 items, got %d", len(s.Items()))
	}
}

func TestArticlesState_NavigateWraps(t *testing.T) {
	s := NewArticlesState(10)
	gen, _ := s.BeginFetch()
	s.ApplyResult(gen, articlesPage(3, 1, 1, 3))

	s.Navigate(-1)
	if s.Index() != 2 {
		t.Errorf("Expected wraparound to last row, got %d", s.Index())
	}
	s.Navigate(1)
	if s.Index() != 0 {
		t.Errorf("Expected wraparound to first row, got %d", s.Index())
	}
}

func TestArticlesState_SelectedOnEmptyPage(t *testing.T) {
	s := NewArticlesState(10)
	gen, _ := s.BeginFetch()
	s.ApplyResult(gen, articlesPage(0, 1, 1, 0))

	if s.Selected() != nil {
		t.Error("Expected no selection on an empty page")
	}
}
