package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinybio/linkdeck/internal/forms"
	"github.com/tinybio/linkdeck/internal/types"
)

// fieldKind selects the editing behavior of a form field
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSecret
	fieldRole
	fieldStatus
	fieldCategory
	fieldBool
)

// categoryOption is one entry of the article category selector
type categoryOption struct {
	id   string
	name string
}

// formField binds one modal line to a field of the underlying form
// struct. Text fields edit through a cursor; enum fields cycle with
// the arrow keys.
type formField struct {
	label string
	kind  fieldKind
	name  string // wire field name, used for validation errors and drafts

	text   *string
	cursor int

	flag    *bool
	role    *types.Role
	status  *types.ArticleStatus
	options []categoryOption
}

// isText reports whether the field edits free text
func (f *formField) isText() bool {
	return f.kind == fieldText || f.kind == fieldSecret
}

// display returns the value to render
func (f *formField) display() string {
	switch f.kind {
	case fieldSecret:
		return strings.Repeat("*", len(*f.text))
	case fieldRole:
		return string(*f.role)
	case fieldStatus:
		return string(*f.status)
	case fieldBool:
		if *f.flag {
			return "yes"
		}
		return "no"
	case fieldCategory:
		for _, opt := range f.options {
			if opt.id == *f.text {
				return opt.name
			}
		}
		return "(none)"
	default:
		return *f.text
	}
}

// handleKey applies one keypress to the field, reporting whether it
// was consumed.
func (f *formField) handleKey(msg tea.KeyMsg) bool {
	if f.isText() {
		return f.handleTextKey(msg)
	}

	switch msg.String() {
	case "left", "h":
		f.cycle(-1)
		return true
	case "right", "l", " ":
		f.cycle(1)
		return true
	}
	return false
}

func (f *formField) handleTextKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		runes := []rune(*f.text)
		inserted := append(runes[:f.cursor:f.cursor], append(msg.Runes, runes[f.cursor:]...)...)
		*f.text = string(inserted)
		f.cursor += len(msg.Runes)
		return true
	case tea.KeySpace:
		runes := []rune(*f.text)
		*f.text = string(runes[:f.cursor]) + " " + string(runes[f.cursor:])
		f.cursor++
		return true
	case tea.KeyBackspace:
		if f.cursor > 0 {
			runes := []rune(*f.text)
			*f.text = string(append(runes[:f.cursor-1:f.cursor-1], runes[f.cursor:]...))
			f.cursor--
		}
		return true
	case tea.KeyLeft:
		if f.cursor > 0 {
			f.cursor--
		}
		return true
	case tea.KeyRight:
		if f.cursor < len([]rune(*f.text)) {
			f.cursor++
		}
		return true
	case tea.KeyHome:
		f.cursor = 0
		return true
	case tea.KeyEnd:
		f.cursor = len([]rune(*f.text))
		return true
	}
	return false
}

// cycle advances an enum field in either direction
func (f *formField) cycle(delta int) {
	switch f.kind {
	case fieldRole:
		roles := types.Roles()
		idx := 0
		for i, r := range roles {
			if r == *f.role {
				idx = i
			}
		}
		*f.role = roles[(idx+delta+len(roles))%len(roles)]
	case fieldStatus:
		statuses := types.ArticleStatuses()
		idx := 0
		for i, s := range statuses {
			if s == *f.status {
				idx = i
			}
		}
		*f.status = statuses[(idx+delta+len(statuses))%len(statuses)]
	case fieldBool:
		*f.flag = !*f.flag
	case fieldCategory:
		// Option 0 is always "(none)" with an empty id.
		idx := 0
		for i, opt := range f.options {
			if opt.id == *f.text {
				idx = i
			}
		}
		*f.text = f.options[(idx+delta+len(f.options))%len(f.options)].id
	}
}

// value returns the field's current value as a draft string
func (f *formField) value() string {
	switch f.kind {
	case fieldBool:
		if *f.flag {
			return "true"
		}
		return "false"
	case fieldRole:
		return string(*f.role)
	case fieldStatus:
		return string(*f.status)
	default:
		return *f.text
	}
}

// userFormFields builds the modal lines for a user form
func userFormFields(f *forms.UserForm) []*formField {
	fields := []*formField{
		{label: "Name", name: "name", kind: fieldText, text: &f.Name},
		{label: "Email", name: "email", kind: fieldText, text: &f.Email},
		{label: "Role", name: "role", kind: fieldRole, role: &f.Role},
		{label: "Password", name: "password", kind: fieldSecret, text: &f.Password},
		{label: "Confirm", name: "passwordConfirm", kind: fieldSecret, text: &f.PasswordConfirm},
	}
	for _, field := range fields {
		if field.isText() {
			field.cursor = len([]rune(*field.text))
		}
	}
	return fields
}

// categoryFormFields builds the modal lines for a category form. The
// icon line edits either the emoji literal or a local image path to
// upload, depending on which sub-mode is active.
func categoryFormFields(f *forms.CategoryForm, uploadMode bool) []*formField {
	fields := []*formField{
		{label: "Name", name: "name", kind: fieldText, text: &f.Name},
	}
	if uploadMode {
		fields = append(fields, &formField{label: "Image file", name: "icon", kind: fieldText, text: &f.UploadPath})
	} else {
		fields = append(fields, &formField{label: "Icon", name: "icon", kind: fieldText, text: &f.Icon.Value})
	}
	for _, field := range fields {
		if field.isText() {
			field.cursor = len([]rune(*field.text))
		}
	}
	return fields
}

// articleFormFields builds the editor lines for an article form
func articleFormFields(f *forms.ArticleForm, categories []types.Category) []*formField {
	options := []categoryOption{{id: "", name: "(none)"}}
	for _, c := range categories {
		options = append(options, categoryOption{id: c.ID, name: c.Name})
	}

	fields := []*formField{
		{label: "Title", name: "title", kind: fieldText, text: &f.Title},
		{label: "Slug", name: "slug", kind: fieldText, text: &f.Slug},
		{label: "Content", name: "content", kind: fieldText, text: &f.Content},
		{label: "Excerpt", name: "excerpt", kind: fieldText, text: &f.Excerpt},
		{label: "Image", name: "featuredImage", kind: fieldText, text: &f.FeaturedImage},
		{label: "Category", name: "categoryId", kind: fieldCategory, text: &f.CategoryID, options: options},
		{label: "Status", name: "status", kind: fieldStatus, status: &f.Status},
		{label: "Tags", name: "tags", kind: fieldText, text: &f.TagsInput},
		{label: "Featured", name: "isFeatured", kind: fieldBool, flag: &f.IsFeatured},
	}
	for _, field := range fields {
		if field.isText() {
			field.cursor = len([]rune(*field.text))
		}
	}
	return fields
}
