package mock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tinybio/linkdeck/internal/api"
	"github.com/tinybio/linkdeck/internal/types"
)

// newTestClient runs the mock handler and points a real API client at
// it, so these tests cover both sides of the wire contract.
func newTestClient(t *testing.T, seed bool) *api.Client {
	t.Helper()
	mockServer := NewServer(Config{Seed: seed})
	server := httptest.NewServer(mockServer.Handler())
	t.Cleanup(server.Close)
	return api.NewClient(server.URL + "/api")
}

func TestSeededCollections(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()

	users, err := client.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 4 {
		t.Errorf("Expected 4 seeded users, got %d", len(users))
	}

	cats, err := client.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 2 {
		t.Errorf("Expected 2 seeded categories, got %d", len(cats))
	}
}

func TestLoginSeededAndUnknown(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()

	user, err := client.Login(ctx, "admin@linkdeck.local", "anything")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Role != types.RoleSuperAdmin {
		t.Errorf("Expected seeded superadmin, got %+v", user)
	}
	if client.Token == "" {
		t.Error("Expected a token to be issued")
	}

	guest, err := client.Login(ctx, "guest@example.com", "anything")
	if err != nil {
		t.Fatalf("Login (unknown): %v", err)
	}
	if guest.Role != types.RoleAdmin {
		t.Errorf("Expected synthesized admin, got %+v", guest)
	}
}

func TestUserLifecycle(t *testing.T) {
	client := newTestClient(t, false)
	ctx := context.Background()

	created, err := client.CreateUser(ctx, map[string]any{
		"name":     "Budi",
		"email":    "budi@example.com",
		"role":     "ADMIN",
		"password": "longenough",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID == "" || created.Role != types.RoleAdmin {
		t.Errorf("Unexpected created user: %+v", created)
	}

	updated, err := client.UpdateUser(ctx, created.ID, map[string]any{"name": "Budi S."})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != "Budi S." || updated.Email != "budi@example.com" {
		t.Errorf("Expected partial update, got %+v", updated)
	}

	if err := client.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := client.DeleteUser(ctx, created.ID); !api.IsNotFound(err) {
		t.Errorf("Expected 404 on second delete, got %v", err)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	client := newTestClient(t, false)
	ctx := context.Background()

	payload := map[string]any{"name": "A", "email": "dup@example.com", "password": "longenough"}
	if _, err := client.CreateUser(ctx, payload); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := client.CreateUser(ctx, payload)
	apiErr, ok := err.(*api.APIError)
	if !ok || apiErr.Status != http.StatusConflict {
		t.Fatalf("Expected 409, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "email") {
		t.Errorf("Expected email conflict message, got %q", apiErr.Message)
	}
}

func TestCategoryDeleteBlockedWhenInUse(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()

	cats, err := client.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}

	var food, travel types.Category
	for _, c := range cats {
		switch c.Name {
		case "Food":
			food = c
		case "Travel":
			travel = c
		}
	}
	if food.Count.Total() != 3 {
		t.Fatalf("Expected seeded Food usage 3, got %d", food.Count.Total())
	}

	err = client.DeleteCategory(ctx, food.ID)
	if err == nil {
		t.Fatal("Expected delete of in-use category to fail")
	}
	if !strings.Contains(err.Error(), "3") {
		t.Errorf("Expected the usage count in the message, got %q", err.Error())
	}

	if err := client.DeleteCategory(ctx, travel.ID); err != nil {
		t.Errorf("Expected unused category to be deletable, got %v", err)
	}
}

func TestCategoryArticlesDrilldown(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()

	cats, _ := client.ListCategories(ctx)
	var travel types.Category
	for _, c := range cats {
		if c.Name == "Travel" {
			travel = c
		}
	}

	children, err := client.CategoryArticles(ctx, travel.ID)
	if err != nil {
		t.Fatalf("CategoryArticles: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("Expected 2 seeded travel articles, got %d", len(children))
	}
	for _, a := range children {
		if a.CategoryID == nil || *a.CategoryID != travel.ID {
			t.Errorf("Article %q belongs to the wrong category", a.Title)
		}
		if a.Category == nil || a.Category.Name != "Travel" {
			t.Errorf("Expected embedded category on %q", a.Title)
		}
	}
}

func TestArticlePagination(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()

	first, err := client.ListArticles(ctx, api.ArticleQuery{Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if first.Pagination == nil {
		t.Fatal("Expected pagination metadata")
	}
	if first.Pagination.Total != 4 || first.Pagination.Pages != 2 {
		t.Errorf("Expected total 4 over 2 pages, got %+v", first.Pagination)
	}
	if len(first.Items) != 3 {
		t.Errorf("Expected 3 items on page 1, got %d", len(first.Items))
	}

	second, err := client.ListArticles(ctx, api.ArticleQuery{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("ListArticles (page 2): %v", err)
	}
	if len(second.Items) != 1 {
		t.Errorf("Expected 1 item on page 2, got %d", len(second.Items))
	}

	beyond, err := client.ListArticles(ctx, api.ArticleQuery{Page: 9, Limit: 3})
	if err != nil {
		t.Fatalf("ListArticles (page 9): %v", err)
	}
	if len(beyond.Items) != 0 {
		t.Errorf("Expected no items past the last page, got %d", len(beyond.Items))
	}
}

func TestArticleFilters(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()

	published, err := client.ListArticles(ctx, api.ArticleQuery{Status: types.StatusPublished})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(published.Items) != 2 {
		t.Errorf("Expected 2 published articles, got %d", len(published.Items))
	}

	search, err := client.ListArticles(ctx, api.ArticleQuery{Search: "beaches"})
	if err != nil {
		t.Fatalf("ListArticles (search): %v", err)
	}
	if len(search.Items) != 1 || search.Items[0].Title != "Hidden Beaches" {
		t.Errorf("Expected the beaches article, got %+v", search.Items)
	}
}

func TestArticleSlugConflict(t *testing.T) {
	client := newTestClient(t, false)
	ctx := context.Background()

	if _, err := client.CreateArticle(ctx, map[string]any{"title": "Post", "slug": "post"}); err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	_, err := client.CreateArticle(ctx, map[string]any{"title": "Other", "slug": "post"})
	apiErr, ok := err.(*api.APIError)
	if !ok || apiErr.Status != http.StatusConflict {
		t.Fatalf("Expected 409 on duplicate slug, got %v", err)
	}
}

func TestPublishedAtStampedOnce(t *testing.T) {
	client := newTestClient(t, false)
	ctx := context.Background()

	article, err := client.CreateArticle(ctx, map[string]any{"title": "Post", "content": "body"})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if article.Status != types.StatusDraft || article.PublishedAt != nil {
		t.Fatalf("Expected an unpublished draft, got %+v", article)
	}

	published, err := client.UpdateArticle(ctx, article.ID, map[string]any{"status": "PUBLISHED"})
	if err != nil {
		t.Fatalf("UpdateArticle: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("Expected publishedAt to be stamped on first publish")
	}
	stamp := *published.PublishedAt

	archived, _ := client.UpdateArticle(ctx, article.ID, map[string]any{"status": "ARCHIVED"})
	republished, err := client.UpdateArticle(ctx, article.ID, map[string]any{"status": "PUBLISHED"})
	if err != nil {
		t.Fatalf("UpdateArticle (republish): %v", err)
	}
	if archived.PublishedAt == nil || republished.PublishedAt == nil {
		t.Fatal("Expected publishedAt to survive status changes")
	}
	if !republished.PublishedAt.Equal(stamp) {
		t.Errorf("Expected the original publish time to be kept, got %v", republished.PublishedAt)
	}
}

func TestArticleCategoryCleared(t *testing.T) {
	client := newTestClient(t, true)
	ctx := context.Background()

	page, _ := client.ListArticles(ctx, api.ArticleQuery{})
	target := page.Items[0]
	if target.CategoryID == nil {
		t.Fatal("Expected a seeded article with a category")
	}

	updated, err := client.UpdateArticle(ctx, target.ID, map[string]any{"categoryId": nil})
	if err != nil {
		t.Fatalf("UpdateArticle: %v", err)
	}
	if updated.CategoryID != nil {
		t.Errorf("Expected explicit null to clear the category, got %v", *updated.CategoryID)
	}
}

func TestUploadReturnsServerPath(t *testing.T) {
	client := newTestClient(t, false)

	path, err := client.UploadIcon(context.Background(), "burger.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadIcon: %v", err)
	}
	if !strings.HasPrefix(path, types.UploadPathPrefix) {
		t.Errorf("Expected an %s path, got %q", types.UploadPathPrefix, path)
	}
	if !strings.HasSuffix(path, "burger.png") {
		t.Errorf("Expected the original filename to be kept, got %q", path)
	}
}
