package tui

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinybio/linkdeck/internal/api"
	"github.com/tinybio/linkdeck/internal/config"
	"github.com/tinybio/linkdeck/internal/draft"
	"github.com/tinybio/linkdeck/internal/mock"
	"github.com/tinybio/linkdeck/internal/session"
)

// CreateTestModel creates a Model wired to a seeded in-memory API,
// with all state files redirected to a temp directory.
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	tempDir := t.TempDir()
	originalSession := config.SessionFile
	originalDrafts := config.DraftsPath
	config.SessionFile = filepath.Join(tempDir, ".session.json")
	config.DraftsPath = filepath.Join(tempDir, "drafts.db")
	t.Cleanup(func() {
		config.SessionFile = originalSession
		config.DraftsPath = originalDrafts
	})

	mockServer := mock.NewServer(mock.Config{Seed: true})
	server := httptest.NewServer(mockServer.Handler())
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL + "/api")
	client.Token = "test-token"

	draftMgr, err := draft.NewManager(config.DraftsPath)
	if err != nil {
		t.Fatalf("Failed to create draft manager: %v", err)
	}
	t.Cleanup(func() { draftMgr.Close() })

	m := New(client, session.NewManager(), draftMgr, config.DefaultSettings())
	m.width = 120
	m.height = 40
	return m
}

// CreateLoggedOutTestModel is CreateTestModel without a stored token,
// so the model starts on the login screen.
func CreateLoggedOutTestModel(t *testing.T) *Model {
	t.Helper()
	m := CreateTestModel(t)
	m.client.Token = ""
	m.mode = ModeLogin
	return m
}

// DrainCmd executes a command tree and feeds the resulting messages
// back into the model, mirroring what the bubbletea runtime does.
func DrainCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()

	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			DrainCmd(t, m, sub)
		}
		return
	}
	_, next := m.Update(msg)
	DrainCmd(t, m, next)
}
