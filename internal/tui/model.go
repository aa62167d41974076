package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinybio/linkdeck/internal/api"
	"github.com/tinybio/linkdeck/internal/config"
	"github.com/tinybio/linkdeck/internal/draft"
	"github.com/tinybio/linkdeck/internal/forms"
	"github.com/tinybio/linkdeck/internal/session"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeLogin Mode = iota
	ModeUsers
	ModeCategories
	ModeArticles
	ModeCategoryDetail
	ModeUserForm
	ModeCategoryForm
	ModeArticleEditor
	ModeConfirm
	ModeNotify
	ModeHelp
)

// Model represents the TUI state
type Model struct {
	// Core state
	client     *api.Client
	sessionMgr *session.Manager
	draftMgr   *draft.Manager
	settings   config.Settings
	mode       Mode
	returnMode Mode // where modals return to on close

	// Screen states
	users      *UsersState
	categories *CategoriesState
	articles   *ArticlesState
	detail     *CategoryDetailState

	// Search input (footer, applies to the active screen)
	searching   bool
	searchInput string

	// Login inputs
	loginEmail    string
	loginPassword string
	loginField    int // 0=email, 1=password
	loginCursor   int

	// Form state
	userForm           *forms.UserForm
	categoryForm       *forms.CategoryForm
	articleForm        *forms.ArticleForm
	formFields         []*formField
	formIndex          int
	formErrors         forms.Errors
	categoryUploadMode bool
	autosave           bool

	// Confirm/notify modal state
	confirmText string
	confirmCmd  tea.Cmd
	notifyText  string

	// UI state
	helpView  viewport.Model
	width     int
	height    int
	statusMsg string
	errorMsg  string
	loading   bool
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	if m.client.Token == "" {
		return nil
	}
	// Already authenticated: fan out the initial fetches.
	return tea.Batch(m.loadUsers(), m.loadCategories(), m.loadArticles())
}

// Cleanup closes database connections
func (m *Model) Cleanup() {
	if m.draftMgr != nil {
		m.draftMgr.Close()
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width - MinimalBorderMargin
		m.helpView.Height = msg.Height - HelpChromeLines

	case errorMsg:
		m.loading = false
		m.errorMsg = string(msg)

	case statusMsg:
		m.statusMsg = string(msg)

	case loginDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Login failed: %v", msg.err)
			break
		}
		m.errorMsg = ""
		m.sessionMgr.SetCredentials(m.client.Token, msg.user.Email)
		if err := m.sessionMgr.Save(); err != nil {
			m.errorMsg = fmt.Sprintf("Failed to save session: %v", err)
		}
		m.loginPassword = ""
		m.mode = ModeUsers
		m.statusMsg = fmt.Sprintf("Signed in as %s", msg.user.Email)
		return m, tea.Batch(m.loadUsers(), m.loadCategories(), m.loadArticles())

	case usersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to load users: %v", msg.err)
			break
		}
		if m.users.ApplyResult(msg.generation, msg.users) {
			m.errorMsg = ""
			m.statusMsg = fmt.Sprintf("Loaded %d users", len(msg.users))
		}

	case categoriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to load categories: %v", msg.err)
			break
		}
		if m.categories.ApplyResult(msg.generation, msg.categories) {
			m.errorMsg = ""
		}

	case articlesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to load articles: %v", msg.err)
			break
		}
		if m.articles.ApplyResult(msg.generation, msg.collection) {
			m.errorMsg = ""
		}

	case categoryArticlesMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to load category articles: %v", msg.err)
			break
		}
		m.detail.ApplyResult(msg.generation, msg.articles)

	case articleDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to load article: %v", msg.err)
			break
		}
		m.openArticleEditor(*msg.article, msg.draft)

	case userSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to save user: %v", msg.err)
			break
		}
		m.closeForm()
		m.statusMsg = fmt.Sprintf("Saved user %s", msg.user.Name)
		return m, m.loadUsers()

	case categorySavedMsg:
		m.loading = false
		if msg.uploadedPath != "" && m.categoryForm != nil {
			// Record the finished upload so retrying after a failed
			// save does not upload the file again.
			m.categoryForm.SetUploadedIcon(msg.uploadedPath)
		}
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to save category: %v", msg.err)
			break
		}
		m.closeForm()
		m.statusMsg = fmt.Sprintf("Saved category %s", msg.category.Name)
		return m, m.loadCategories()

	case articleSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to save article: %v", msg.err)
			break
		}
		// A successful save invalidates the draft buffer.
		if !msg.created {
			if err := m.draftMgr.Clear(msg.article.ID); err != nil {
				m.errorMsg = fmt.Sprintf("Failed to clear draft: %v", err)
			}
		}
		m.closeForm()
		m.statusMsg = fmt.Sprintf("Saved article %q", msg.article.Title)
		return m, m.loadArticles()

	case entityDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Failed to delete %s: %v", msg.kind, msg.err)
			break
		}
		m.statusMsg = "Deleted " + msg.kind
		switch msg.kind {
		case "user":
			return m, m.loadUsers()
		case "category":
			return m, m.loadCategories()
		case "article":
			return m, m.loadArticles()
		}
	}

	return m, nil
}

// closeForm leaves whatever modal is open and returns to the list
func (m *Model) closeForm() {
	m.userForm = nil
	m.categoryForm = nil
	m.articleForm = nil
	m.formFields = nil
	m.formIndex = 0
	m.formErrors = nil
	m.categoryUploadMode = false
	m.confirmCmd = nil
	m.mode = m.returnMode
}

// screenMode returns the list screen a modal belongs to
func (m *Model) screenMode() Mode {
	switch m.mode {
	case ModeUsers, ModeCategories, ModeArticles, ModeCategoryDetail:
		return m.mode
	}
	return m.returnMode
}
