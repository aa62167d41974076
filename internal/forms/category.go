package forms

import (
	"strings"
	"unicode/utf8"

	"github.com/tinybio/linkdeck/internal/types"
)

const (
	// MaxCategoryNameLength bounds the category name
	MaxCategoryNameLength = 50
	// MaxEmojiLength bounds the literal icon field; enough for a
	// multi-codepoint emoji but not free text.
	MaxEmojiLength = 8
)

// CategoryForm backs the category create/edit modal. The icon is either
// a literal emoji typed into the form or an image chosen from disk; in
// the image case UploadPath holds the local file until the caller
// uploads it and records the server path with SetUploadedIcon.
type CategoryForm struct {
	editID string

	Name       string
	Icon       types.Icon
	UploadPath string
}

// NewCategoryForm returns a create-mode form with zero defaults
func NewCategoryForm() *CategoryForm {
	return &CategoryForm{}
}

// EditCategoryForm returns an edit-mode form pre-filled from an
// existing record.
func EditCategoryForm(c types.Category) *CategoryForm {
	return &CategoryForm{
		editID: c.ID,
		Name:   c.Name,
		Icon:   c.Icon,
	}
}

// IsEdit reports whether the form updates an existing category
func (f *CategoryForm) IsEdit() bool {
	return f.editID != ""
}

// EditID returns the id of the category being edited, or "" in create mode
func (f *CategoryForm) EditID() string {
	return f.editID
}

// PendingUpload reports whether a local image still needs uploading
// before the form can be submitted.
func (f *CategoryForm) PendingUpload() bool {
	return f.UploadPath != ""
}

// SetUploadedIcon records the server path returned by the upload
// endpoint and clears the pending local file.
func (f *CategoryForm) SetUploadedIcon(path string) {
	f.Icon = types.ImageIcon(path)
	f.UploadPath = ""
}

// Validate checks all fields locally and returns per-field messages
func (f *CategoryForm) Validate() Errors {
	errs := make(Errors)

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs["name"] = "name is required"
	} else if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		errs["name"] = "name must be at most 50 characters"
	}

	// A pending local file satisfies the icon requirement; the upload
	// happens between validation and the create/update call.
	if f.PendingUpload() {
		return errs
	}

	if f.Icon.IsZero() {
		errs["icon"] = "icon is required"
	} else if f.Icon.Kind == types.IconEmoji && utf8.RuneCountInString(f.Icon.Value) > MaxEmojiLength {
		errs["icon"] = "icon must be a short emoji"
	}

	return errs
}

// Payload returns the wire body for create or update. Callers must
// resolve a pending upload first so the icon is a server path.
func (f *CategoryForm) Payload() map[string]any {
	return map[string]any{
		"name": strings.TrimSpace(f.Name),
		"icon": f.Icon.String(),
	}
}
