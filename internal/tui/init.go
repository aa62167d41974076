// Package tui is the terminal admin console: three list screens
// (users, categories, articles) over the platform API, with modal
// create/edit forms, confirmations and a local draft buffer for
// article edits.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinybio/linkdeck/internal/api"
	"github.com/tinybio/linkdeck/internal/config"
	"github.com/tinybio/linkdeck/internal/draft"
	"github.com/tinybio/linkdeck/internal/session"
)

// New creates a TUI model from its dependencies
func New(client *api.Client, sessionMgr *session.Manager, draftMgr *draft.Manager, settings config.Settings) *Model {
	perPage := settings.ItemsPerPage
	if perPage <= 0 {
		perPage = config.DefaultItemsPerPage
	}

	m := &Model{
		client:     client,
		sessionMgr: sessionMgr,
		draftMgr:   draftMgr,
		settings:   settings,
		helpView:   viewport.New(80, 20),
		users:      NewUsersState(perPage),
		categories: NewCategoriesState(perPage),
		articles:   NewArticlesState(perPage),
		detail:     NewCategoryDetailState(),
		mode:       ModeUsers,
		returnMode: ModeUsers,
	}

	if client.Token == "" {
		m.mode = ModeLogin
	} else if email := sessionMgr.Email(); email != "" {
		m.statusMsg = "Signed in as " + email
	}

	return m
}

// Run starts the console
func Run(apiOverride string, perPageOverride int) error {
	if err := config.Initialize(); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if perPageOverride > 0 {
		settings.ItemsPerPage = perPageOverride
	}

	sessionMgr := session.NewManager()
	if err := sessionMgr.Load(); err != nil {
		return err
	}
	if apiOverride != "" {
		// The flag becomes a session-level override so a later Save
		// keeps pointing at the same server.
		sessionMgr.SetAPIBaseURL(apiOverride)
	}

	client := api.NewClient(sessionMgr.APIBaseURL(settings.APIBaseURL))
	client.Token = sessionMgr.Token()

	draftMgr, err := draft.NewManager(config.DraftsPath)
	if err != nil {
		return err
	}

	m := New(client, sessionMgr, draftMgr, settings)
	defer m.Cleanup()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
