package types

import "time"

// Role enumerates user permission levels as exposed by the platform API.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// Valid reports whether the role is one of the known wire values
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Roles lists all valid roles in display order
func Roles() []Role {
	return []Role{RoleUser, RoleAdmin, RoleSuperAdmin}
}

// ArticleStatus enumerates the article lifecycle states.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusArchived  ArticleStatus = "ARCHIVED"
)

// Valid reports whether the status is one of the known wire values
func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ArticleStatuses lists all valid statuses in display order
func ArticleStatuses() []ArticleStatus {
	return []ArticleStatus{StatusDraft, StatusPublished, StatusArchived}
}

// UserCount holds derived counts projected onto a user record
type UserCount struct {
	Linktrees int `json:"linktrees"`
}

// User is an admin-visible account record
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Count     UserCount `json:"_count"`
}

// CategoryCount holds derived usage counts projected onto a category.
// The API reports link usage in two buckets depending on where the
// link lives; deletion is blocked when either is non-zero.
type CategoryCount struct {
	Linktrees       int `json:"linktrees,omitempty"`
	DetailLinktrees int `json:"detailLinktrees,omitempty"`
}

// Total returns the combined usage count
func (c CategoryCount) Total() int {
	return c.Linktrees + c.DetailLinktrees
}

// Category groups links on a user's page
type Category struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Icon      Icon          `json:"icon"`
	CreatedAt time.Time     `json:"createdAt"`
	Count     CategoryCount `json:"_count"`
}

// Article is a blog post managed from the admin screens
type Article struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Content       string        `json:"content"`
	Excerpt       string        `json:"excerpt,omitempty"`
	FeaturedImage string        `json:"featuredImage,omitempty"`
	CategoryID    *string       `json:"categoryId"`
	Category      *Category     `json:"category,omitempty"`
	Status        ArticleStatus `json:"status"`
	Tags          []string      `json:"tags,omitempty"`
	IsFeatured    bool          `json:"isFeatured"`
	ViewCount     int           `json:"viewCount"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	PublishedAt   *time.Time    `json:"publishedAt,omitempty"`
}

// Pagination is the server-side paging metadata returned for articles
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Collection is the wire shape of a list endpoint. Users and
// categories come back without pagination (the full collection);
// articles carry server-side paging metadata.
type Collection[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
