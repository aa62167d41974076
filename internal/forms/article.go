package forms

import (
	"strings"
	"unicode/utf8"

	"github.com/tinybio/linkdeck/internal/types"
)

// MaxTitleLength bounds the article title
const MaxTitleLength = 200

// ArticleForm backs the article editor. Tags are edited as a single
// comma-joined string and split on submit.
type ArticleForm struct {
	editID string

	Title         string
	Slug          string
	Content       string
	Excerpt       string
	FeaturedImage string
	CategoryID    string
	Status        types.ArticleStatus
	TagsInput     string
	IsFeatured    bool
}

// NewArticleForm returns a create-mode form with zero defaults
func NewArticleForm() *ArticleForm {
	return &ArticleForm{Status: types.StatusDraft}
}

// EditArticleForm returns an edit-mode form pre-filled from an
// existing record.
func EditArticleForm(a types.Article) *ArticleForm {
	f := &ArticleForm{
		editID:        a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Content:       a.Content,
		Excerpt:       a.Excerpt,
		FeaturedImage: a.FeaturedImage,
		Status:        a.Status,
		TagsInput:     JoinTags(a.Tags),
		IsFeatured:    a.IsFeatured,
	}
	if a.CategoryID != nil {
		f.CategoryID = *a.CategoryID
	}
	return f
}

// IsEdit reports whether the form updates an existing article
func (f *ArticleForm) IsEdit() bool {
	return f.editID != ""
}

// EditID returns the id of the article being edited, or "" in create mode
func (f *ArticleForm) EditID() string {
	return f.editID
}

// ApplyDraft overlays buffered field overrides onto the form. Unknown
// fields are ignored so stale buffers never break the editor.
func (f *ArticleForm) ApplyDraft(changes map[string]string) {
	for field, value := range changes {
		switch field {
		case "title":
			f.Title = value
		case "slug":
			f.Slug = value
		case "content":
			f.Content = value
		case "excerpt":
			f.Excerpt = value
		case "featuredImage":
			f.FeaturedImage = value
		case "categoryId":
			f.CategoryID = value
		case "status":
			f.Status = types.ArticleStatus(value)
		case "tags":
			f.TagsInput = value
		case "isFeatured":
			f.IsFeatured = value == "true"
		}
	}
}

// Validate checks all fields locally and returns per-field messages
func (f *ArticleForm) Validate() Errors {
	errs := make(Errors)

	title := strings.TrimSpace(f.Title)
	if title == "" {
		errs["title"] = "title is required"
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		errs["title"] = "title must be at most 200 characters"
	}

	if slug := strings.TrimSpace(f.Slug); slug != "" && Slugify(slug) != slug {
		errs["slug"] = "slug may only contain lowercase letters, digits and hyphens"
	}

	if strings.TrimSpace(f.Content) == "" {
		errs["content"] = "content is required"
	}

	if !f.Status.Valid() {
		errs["status"] = "status must be one of DRAFT, PUBLISHED, ARCHIVED"
	}

	return errs
}

// Payload returns the wire body for create or update. A blank slug is
// derived from the title; blank optionals are sent as null so the
// server clears them rather than keeping stale values.
func (f *ArticleForm) Payload() map[string]any {
	title := strings.TrimSpace(f.Title)
	slug := strings.TrimSpace(f.Slug)
	if slug == "" {
		slug = Slugify(title)
	}

	body := map[string]any{
		"title":      title,
		"slug":       slug,
		"content":    f.Content,
		"status":     f.Status,
		"tags":       SplitTags(f.TagsInput),
		"isFeatured": f.IsFeatured,
	}

	body["excerpt"] = nullableString(f.Excerpt)
	body["featuredImage"] = nullableString(f.FeaturedImage)
	body["categoryId"] = nullableString(f.CategoryID)

	return body
}

func nullableString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
