package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinybio/linkdeck/internal/api"
	"github.com/tinybio/linkdeck/internal/forms"
	"github.com/tinybio/linkdeck/internal/types"
)

// requestContext bounds one background API call
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), api.DefaultTimeout)
}

// login exchanges the typed credentials for a token
func (m *Model) login() tea.Cmd {
	email, password := m.loginEmail, m.loginPassword
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		user, err := client.Login(ctx, email, password)
		return loginDoneMsg{user: user, err: err}
	}
}

// loadUsers fetches the full user collection
func (m *Model) loadUsers() tea.Cmd {
	generation := m.users.BeginFetch()
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		users, err := client.ListUsers(ctx)
		return usersLoadedMsg{generation: generation, users: users, err: err}
	}
}

// loadCategories fetches the full category collection
func (m *Model) loadCategories() tea.Cmd {
	generation := m.categories.BeginFetch()
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		cats, err := client.ListCategories(ctx)
		return categoriesLoadedMsg{generation: generation, categories: cats, err: err}
	}
}

// loadArticles fetches the current server page of articles
func (m *Model) loadArticles() tea.Cmd {
	generation, query := m.articles.BeginFetch()
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		coll, err := client.ListArticles(ctx, query)
		return articlesLoadedMsg{generation: generation, collection: coll, err: err}
	}
}

// openCategoryDetail switches to the drill-down and lazily fetches the
// child articles.
func (m *Model) openCategoryDetail(cat types.Category) tea.Cmd {
	generation := m.detail.Open(cat)
	m.returnMode = ModeCategories
	m.mode = ModeCategoryDetail
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		articles, err := client.CategoryArticles(ctx, cat.ID)
		return categoryArticlesMsg{generation: generation, articles: articles, err: err}
	}
}

// fetchArticleForEdit loads the full article plus any buffered draft
// before the editor opens. The list row is a summary; editing always
// starts from the complete record.
func (m *Model) fetchArticleForEdit(id string) tea.Cmd {
	m.loading = true
	client := m.client
	drafts := m.draftMgr
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		article, err := client.GetArticle(ctx, id)
		if err != nil {
			return articleDetailMsg{err: err}
		}
		changes, err := drafts.Get(id)
		if err != nil {
			return articleDetailMsg{err: err}
		}
		return articleDetailMsg{article: article, draft: changes}
	}
}

// openArticleEditor builds the editor form, overlaying a buffered
// draft when one exists.
func (m *Model) openArticleEditor(article types.Article, changes map[string]string) {
	form := forms.EditArticleForm(article)
	if len(changes) > 0 {
		form.ApplyDraft(changes)
		m.statusMsg = "Restored unsaved draft"
	}
	m.articleForm = form
	m.formFields = articleFormFields(form, m.categories.List().Items())
	m.formIndex = 0
	m.formErrors = nil
	m.returnMode = m.screenMode()
	m.mode = ModeArticleEditor
}

// openArticleCreate opens a blank editor
func (m *Model) openArticleCreate() {
	form := forms.NewArticleForm()
	m.articleForm = form
	m.formFields = articleFormFields(form, m.categories.List().Items())
	m.formIndex = 0
	m.formErrors = nil
	m.returnMode = m.screenMode()
	m.mode = ModeArticleEditor
}

// saveDraftField buffers the current editor field. Only existing
// articles are buffered; creates have no identity to key on yet.
func (m *Model) saveDraftField() {
	if m.articleForm == nil || !m.articleForm.IsEdit() {
		return
	}
	if m.formIndex >= len(m.formFields) {
		return
	}
	field := m.formFields[m.formIndex]
	if err := m.draftMgr.Merge(m.articleForm.EditID(), field.name, field.value()); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to buffer draft: %v", err)
	}
}

// submitUserForm validates and sends the user create/update
func (m *Model) submitUserForm() tea.Cmd {
	form := m.userForm
	if errs := form.Validate(); errs.Any() {
		m.formErrors = errs
		return nil
	}
	m.formErrors = nil
	m.loading = true

	client := m.client
	payload := form.Payload()
	id := form.EditID()
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		if id == "" {
			user, err := client.CreateUser(ctx, payload)
			return userSavedMsg{user: user, err: err}
		}
		user, err := client.UpdateUser(ctx, id, payload)
		return userSavedMsg{user: user, err: err}
	}
}

// submitCategoryForm validates, uploads a pending icon image if any,
// then sends the category create/update. A failed upload aborts before
// the primary endpoint is touched. Everything the command needs is
// snapshotted here; the closure never touches the form, which the UI
// loop may still be editing.
func (m *Model) submitCategoryForm() tea.Cmd {
	form := m.categoryForm
	if errs := form.Validate(); errs.Any() {
		m.formErrors = errs
		return nil
	}
	m.formErrors = nil
	m.loading = true

	client := m.client
	id := form.EditID()
	uploadPath := form.UploadPath
	payload := form.Payload()
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		uploaded := ""
		if uploadPath != "" {
			file, err := os.Open(uploadPath)
			if err != nil {
				return categorySavedMsg{err: fmt.Errorf("failed to open icon file: %w", err)}
			}
			serverPath, err := client.UploadIcon(ctx, uploadPath, file)
			file.Close()
			if err != nil {
				return categorySavedMsg{err: err}
			}
			payload["icon"] = serverPath
			uploaded = serverPath
		}

		if id == "" {
			cat, err := client.CreateCategory(ctx, payload)
			return categorySavedMsg{category: cat, uploadedPath: uploaded, err: err}
		}
		cat, err := client.UpdateCategory(ctx, id, payload)
		return categorySavedMsg{category: cat, uploadedPath: uploaded, err: err}
	}
}

// submitArticleForm validates and sends the article create/update
func (m *Model) submitArticleForm() tea.Cmd {
	form := m.articleForm
	if errs := form.Validate(); errs.Any() {
		m.formErrors = errs
		return nil
	}
	m.formErrors = nil
	m.loading = true

	client := m.client
	payload := form.Payload()
	id := form.EditID()
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		if id == "" {
			article, err := client.CreateArticle(ctx, payload)
			return articleSavedMsg{article: article, created: true, err: err}
		}
		article, err := client.UpdateArticle(ctx, id, payload)
		return articleSavedMsg{article: article, err: err}
	}
}

// deleteUser removes a user after confirmation
func (m *Model) deleteUser(id string) tea.Cmd {
	m.loading = true
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return entityDeletedMsg{kind: "user", err: client.DeleteUser(ctx, id)}
	}
}

// deleteCategory removes a category after confirmation. The usage
// precondition was already checked; this only runs for unused ones.
func (m *Model) deleteCategory(id string) tea.Cmd {
	m.loading = true
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return entityDeletedMsg{kind: "category", err: client.DeleteCategory(ctx, id)}
	}
}

// deleteArticle removes an article after confirmation
func (m *Model) deleteArticle(id string) tea.Cmd {
	m.loading = true
	client := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return entityDeletedMsg{kind: "article", err: client.DeleteArticle(ctx, id)}
	}
}

// copyToClipboard copies a value and reports it in the status bar
func (m *Model) copyToClipboard(value, label string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(value); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy %s: %v", label, err))
		}
		return statusMsg(fmt.Sprintf("Copied %s to clipboard", label))
	}
}
