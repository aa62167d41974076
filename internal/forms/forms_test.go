package forms

import (
	"reflect"
	"testing"

	"github.com/tinybio/linkdeck/internal/types"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Go 1.24 Released!  ", "go-1-24-released"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"Ünïcode Drops", "n-code-drops"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.expected {
			t.Errorf("Slugify(%q): expected %q, got %q", tt.title, tt.expected, got)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" go , tui,, bubbletea ,")
	expected := []string{"go", "tui", "bubbletea"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	if got := SplitTags(""); len(got) != 0 {
		t.Errorf("Expected no tags from empty input, got %v", got)
	}
}

func TestUserForm_CreateRequiresPassword(t *testing.T) {
	f := NewUserForm()
	f.Name = "Budi"
	f.Email = "budi@example.com"

	errs := f.Validate()
	if errs["password"] == "" {
		t.Error("Expected a password error on create")
	}
}

func TestUserForm_PasswordRules(t *testing.T) {
	f := NewUserForm()
	f.Name = "Budi"
	f.Email = "budi@example.com"
	f.Password = "short"
	f.PasswordConfirm = "short"

	if errs := f.Validate(); errs["password"] == "" {
		t.Error("Expected a minimum length error")
	}

	f.Password = "longenough"
	f.PasswordConfirm = "different"
	if errs := f.Validate(); errs["passwordConfirm"] == "" {
		t.Error("Expected a confirmation mismatch error")
	}

	f.PasswordConfirm = "longenough"
	if errs := f.Validate(); errs.Any() {
		t.Errorf("Expected a valid form, got %v", errs)
	}
}

func TestUserForm_EmailShape(t *testing.T) {
	f := NewUserForm()
	f.Name = "Budi"
	f.Password = "longenough"
	f.PasswordConfirm = "longenough"

	for _, bad := range []string{"not-an-email", "a@b", "a b@c.com"} {
		f.Email = bad
		if errs := f.Validate(); errs["email"] == "" {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}

	f.Email = "budi@example.com"
	if errs := f.Validate(); errs["email"] != "" {
		t.Errorf("Expected a valid email, got %q", errs["email"])
	}
}

func TestUserForm_EditPrefillAndBlankPassword(t *testing.T) {
	f := EditUserForm(types.User{
		ID:    "u1",
		Name:  "Budi",
		Email: "budi@example.com",
		Role:  types.RoleAdmin,
	})

	if !f.IsEdit() || f.EditID() != "u1" {
		t.Fatalf("Expected edit mode for u1, got %q", f.EditID())
	}
	if f.Name != "Budi" || f.Email != "budi@example.com" || f.Role != types.RoleAdmin {
		t.Errorf("Expected pre-filled fields, got %+v", f)
	}
	if f.Password != "" {
		t.Error("Expected password fields to start blank on edit")
	}

	if errs := f.Validate(); errs.Any() {
		t.Errorf("Expected blank password to be valid on edit, got %v", errs)
	}

	body := f.Payload()
	if _, present := body["password"]; present {
		t.Error("Expected blank password to be omitted from the payload")
	}
	if body["role"] != types.RoleAdmin {
		t.Errorf("Expected role in payload, got %v", body["role"])
	}
}

func TestUserForm_EditWithNewPassword(t *testing.T) {
	f := EditUserForm(types.User{ID: "u1", Name: "Budi", Email: "budi@example.com", Role: types.RoleUser})
	f.Password = "newsecret99"
	f.PasswordConfirm = "newsecret99"

	if errs := f.Validate(); errs.Any() {
		t.Fatalf("Expected valid form, got %v", errs)
	}
	if f.Payload()["password"] != "newsecret99" {
		t.Error("Expected typed password to be sent")
	}
}

func TestCategoryForm_EmojiPayload(t *testing.T) {
	f := NewCategoryForm()
	f.Name = "Food"
	f.Icon = types.EmojiIcon("🍔")

	if errs := f.Validate(); errs.Any() {
		t.Fatalf("Expected valid form, got %v", errs)
	}

	expected := map[string]any{"name": "Food", "icon": "🍔"}
	if got := f.Payload(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestCategoryForm_Validation(t *testing.T) {
	f := NewCategoryForm()

	errs := f.Validate()
	if errs["name"] == "" || errs["icon"] == "" {
		t.Errorf("Expected name and icon errors, got %v", errs)
	}

	f.Name = "This category name is far far far far too long to be accepted"
	f.Icon = types.EmojiIcon("🍔")
	if errs := f.Validate(); errs["name"] == "" {
		t.Error("Expected a length error for a 61-character name")
	}

	f.Name = "Food"
	f.Icon = types.EmojiIcon("definitely not an emoji")
	if errs := f.Validate(); errs["icon"] == "" {
		t.Error("Expected a rejection of free text in the icon field")
	}
}

func TestCategoryForm_UploadFlow(t *testing.T) {
	f := NewCategoryForm()
	f.Name = "Food"
	f.UploadPath = "/home/me/burger.png"

	// A pending local file stands in for the icon during validation.
	if errs := f.Validate(); errs.Any() {
		t.Fatalf("Expected pending upload to validate, got %v", errs)
	}
	if !f.PendingUpload() {
		t.Fatal("Expected a pending upload")
	}

	f.SetUploadedIcon("/uploads/abc-burger.png")
	if f.PendingUpload() {
		t.Error("Expected pending upload to be cleared")
	}
	if f.Icon.Kind != types.IconImage {
		t.Errorf("Expected an image icon, got kind %v", f.Icon.Kind)
	}
	if f.Payload()["icon"] != "/uploads/abc-burger.png" {
		t.Errorf("Expected server path in payload, got %v", f.Payload()["icon"])
	}
}

func TestCategoryForm_EditPrefill(t *testing.T) {
	f := EditCategoryForm(types.Category{ID: "c1", Name: "Food", Icon: types.EmojiIcon("🍔")})

	if !f.IsEdit() || f.EditID() != "c1" {
		t.Fatalf("Expected edit mode for c1, got %q", f.EditID())
	}
	if f.Name != "Food" || f.Icon.Value != "🍔" {
		t.Errorf("Expected pre-filled fields, got %+v", f)
	}
}

func TestArticleForm_SlugDerivedFromTitle(t *testing.T) {
	f := NewArticleForm()
	f.Title = "My First Post"
	f.Content = "body"

	if errs := f.Validate(); errs.Any() {
		t.Fatalf("Expected valid form, got %v", errs)
	}
	if f.Payload()["slug"] != "my-first-post" {
		t.Errorf("Expected derived slug, got %v", f.Payload()["slug"])
	}
}

func TestArticleForm_ExplicitSlugKept(t *testing.T) {
	f := NewArticleForm()
	f.Title = "My First Post"
	f.Slug = "custom-slug"
	f.Content = "body"

	if f.Payload()["slug"] != "custom-slug" {
		t.Errorf("Expected explicit slug, got %v", f.Payload()["slug"])
	}

	f.Slug = "Bad Slug!"
	if errs := f.Validate(); errs["slug"] == "" {
		t.Error("Expected invalid slug characters to be rejected")
	}
}

func TestArticleForm_BlankOptionalsAreNull(t *testing.T) {
	f := NewArticleForm()
	f.Title = "Post"
	f.Content = "body"

	body := f.Payload()
	for _, field := range []string{"excerpt", "featuredImage", "categoryId"} {
		value, present := body[field]
		if !present {
			t.Errorf("Expected %s key to be present", field)
			continue
		}
		if value != nil {
			t.Errorf("Expected %s to be null, got %v", field, value)
		}
	}
}

func TestArticleForm_TagsSplitOnSubmit(t *testing.T) {
	f := NewArticleForm()
	f.Title = "Post"
	f.Content = "body"
	f.TagsInput = "go, tui, bubbletea"

	expected := []string{"go", "tui", "bubbletea"}
	if got := f.Payload()["tags"]; !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestArticleForm_EditPrefill(t *testing.T) {
	catID := "c1"
	f := EditArticleForm(types.Article{
		ID:         "a1",
		Title:      "Post",
		Slug:       "post",
		Content:    "body",
		CategoryID: &catID,
		Status:     types.StatusPublished,
		Tags:       []string{"go", "tui"},
		IsFeatured: true,
	})

	if !f.IsEdit() || f.EditID() != "a1" {
		t.Fatalf("Expected edit mode for a1, got %q", f.EditID())
	}
	if f.CategoryID != "c1" || f.TagsInput != "go, tui" || !f.IsFeatured {
		t.Errorf("Expected pre-filled fields, got %+v", f)
	}
}

func TestArticleForm_ApplyDraft(t *testing.T) {
	f := EditArticleForm(types.Article{ID: "a1", Title: "Old", Content: "body", Status: types.StatusDraft})

	f.ApplyDraft(map[string]string{
		"title":      "New Title",
		"isFeatured": "true",
		"unknown":    "ignored",
	})

	if f.Title != "New Title" {
		t.Errorf("Expected overlaid title, got %q", f.Title)
	}
	if !f.IsFeatured {
		t.Error("Expected isFeatured to be overlaid")
	}
	if f.Content != "body" {
		t.Errorf("Expected untouched fields to survive, got %q", f.Content)
	}
}

func TestArticleForm_StatusValidation(t *testing.T) {
	f := NewArticleForm()
	f.Title = "Post"
	f.Content = "body"
	f.Status = types.ArticleStatus("BOGUS")

	if errs := f.Validate(); errs["status"] == "" {
		t.Error("Expected invalid status to be rejected")
	}
}
