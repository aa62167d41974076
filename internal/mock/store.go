package mock

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tinybio/linkdeck/internal/types"
)

// Store holds the mock server's in-memory state. All access goes
// through the mutex; handlers never touch the maps directly.
type Store struct {
	mu         sync.RWMutex
	users      map[string]types.User
	categories map[string]types.Category
	articles   map[string]types.Article
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:      make(map[string]types.User),
		categories: make(map[string]types.Category),
		articles:   make(map[string]types.Article),
	}
}

// Seed loads a small realistic data set for demos and tests
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	admin := types.User{
		ID:        uuid.New().String(),
		Name:      "Admin",
		Email:     "admin@linkdeck.local",
		Role:      types.RoleSuperAdmin,
		CreatedAt: now.Add(-90 * 24 * time.Hour),
		UpdatedAt: now,
	}
	s.users[admin.ID] = admin

	seedUsers := []struct {
		name, email string
		role        types.Role
		linktrees   int
	}{
		{"Budi Santoso", "budi@example.com", types.RoleAdmin, 2},
		{"Citra Lestari", "citra@example.com", types.RoleUser, 1},
		{"Dewi Anggraini", "dewi@example.com", types.RoleUser, 0},
	}
	for i, u := range seedUsers {
		user := types.User{
			ID:        uuid.New().String(),
			Name:      u.name,
			Email:     u.email,
			Role:      u.role,
			CreatedAt: now.Add(-time.Duration(30+i) * 24 * time.Hour),
			UpdatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
			Count:     types.UserCount{Linktrees: u.linktrees},
		}
		s.users[user.ID] = user
	}

	food := types.Category{
		ID:        uuid.New().String(),
		Name:      "Food",
		Icon:      types.EmojiIcon("🍔"),
		CreatedAt: now.Add(-60 * 24 * time.Hour),
		Count:     types.CategoryCount{Linktrees: 2, DetailLinktrees: 1},
	}
	travel := types.Category{
		ID:        uuid.New().String(),
		Name:      "Travel",
		Icon:      types.EmojiIcon("✈️"),
		CreatedAt: now.Add(-45 * 24 * time.Hour),
	}
	s.categories[food.ID] = food
	s.categories[travel.ID] = travel

	statuses := []types.ArticleStatus{
		types.StatusPublished, types.StatusPublished, types.StatusDraft, types.StatusArchived,
	}
	titles := []string{
		"Street Food Guide", "Hidden Beaches", "Packing Light", "Old Restaurant Reviews",
	}
	cats := []string{food.ID, travel.ID, travel.ID, food.ID}
	for i := range titles {
		created := now.Add(-time.Duration(20-i) * 24 * time.Hour)
		catID := cats[i]
		article := types.Article{
			ID:         uuid.New().String(),
			Title:      titles[i],
			Slug:       slugFromTitle(titles[i]),
			Content:    "Seed content for " + titles[i] + ".",
			CategoryID: &catID,
			Status:     statuses[i],
			Tags:       []string{"seed"},
			ViewCount:  (i + 1) * 7,
			CreatedAt:  created,
			UpdatedAt:  created,
		}
		if article.Status == types.StatusPublished {
			published := created.Add(time.Hour)
			article.PublishedAt = &published
		}
		s.articles[article.ID] = article
	}
}

func slugFromTitle(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// Users returns all users sorted by creation time, newest first
func (s *Store) Users() []types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]types.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users
}

// UserByEmail looks a user up by email
func (s *Store) UserByEmail(email string) (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return types.User{}, false
}

// EmailTaken reports whether another user already has this email
func (s *Store) EmailTaken(email, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// GetUser fetches one user
func (s *Store) GetUser(id string) (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// PutUser inserts or replaces a user
func (s *Store) PutUser(u types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// DeleteUser removes a user, reporting whether it existed
func (s *Store) DeleteUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	delete(s.users, id)
	return ok
}

// Categories returns all categories sorted by name
func (s *Store) Categories() []types.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cats := make([]types.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		return cats[i].Name < cats[j].Name
	})
	return cats
}

// GetCategory fetches one category
func (s *Store) GetCategory(id string) (types.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	return c, ok
}

// PutCategory inserts or replaces a category
func (s *Store) PutCategory(c types.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

// DeleteCategory removes a category, reporting whether it existed.
// Articles that referenced it are unlinked rather than deleted.
func (s *Store) DeleteCategory(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.categories[id]
	if !ok {
		return false
	}
	delete(s.categories, id)
	for aid, a := range s.articles {
		if a.CategoryID != nil && *a.CategoryID == id {
			a.CategoryID = nil
			s.articles[aid] = a
		}
	}
	return true
}

// Articles returns all articles sorted by creation time, newest first
func (s *Store) Articles() []types.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	articles := make([]types.Article, 0, len(s.articles))
	for _, a := range s.articles {
		articles = append(articles, a)
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles
}

// GetArticle fetches one article
func (s *Store) GetArticle(id string) (types.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[id]
	return a, ok
}

// SlugTaken reports whether another article already uses this slug
func (s *Store) SlugTaken(slug, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.ID != excludeID && a.Slug == slug {
			return true
		}
	}
	return false
}

// PutArticle inserts or replaces an article
func (s *Store) PutArticle(a types.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[a.ID] = a
}

// DeleteArticle removes an article, reporting whether it existed
func (s *Store) DeleteArticle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.articles[id]
	delete(s.articles, id)
	return ok
}

// ArticlesByCategory returns the child articles of one category,
// newest first.
func (s *Store) ArticlesByCategory(categoryID string) []types.Article {
	all := s.Articles()
	children := make([]types.Article, 0)
	for _, a := range all {
		if a.CategoryID != nil && *a.CategoryID == categoryID {
			children = append(children, a)
		}
	}
	return children
}
