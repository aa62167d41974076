package session

import (
	"path/filepath"
	"testing"

	"github.com/tinybio/linkdeck/internal/config"
)

func redirectSessionFile(t *testing.T) {
	t.Helper()
	original := config.SessionFile
	config.SessionFile = filepath.Join(t.TempDir(), ".session.json")
	t.Cleanup(func() { config.SessionFile = original })
}

func TestLoad_MissingFileYieldsEmptySession(t *testing.T) {
	redirectSessionFile(t)

	m := NewManager()
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Token() != "" || m.Email() != "" {
		t.Errorf("Expected an empty session, got token %q email %q", m.Token(), m.Email())
	}
	if got := m.APIBaseURL("http://fallback/api"); got != "http://fallback/api" {
		t.Errorf("Expected the fallback API base URL, got %q", got)
	}
}

func TestSession_SaveLoadRoundTrip(t *testing.T) {
	redirectSessionFile(t)

	m := NewManager()
	m.SetCredentials("tok-1", "admin@example.com")
	m.SetAPIBaseURL("http://staging.example.com/api")
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewManager()
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Token() != "tok-1" {
		t.Errorf("Expected the stored token, got %q", reloaded.Token())
	}
	if reloaded.Email() != "admin@example.com" {
		t.Errorf("Expected the stored email, got %q", reloaded.Email())
	}
	if got := reloaded.APIBaseURL("http://fallback/api"); got != "http://staging.example.com/api" {
		t.Errorf("Expected the session override to win, got %q", got)
	}
}

func TestClearCredentials_PersistsAcrossReload(t *testing.T) {
	redirectSessionFile(t)

	m := NewManager()
	m.SetCredentials("tok-1", "admin@example.com")
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m.ClearCredentials()
	if err := m.Save(); err != nil {
		t.Fatalf("Save after clear: %v", err)
	}

	reloaded := NewManager()
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Token() != "" || reloaded.Email() != "" {
		t.Errorf("Expected cleared credentials, got token %q email %q", reloaded.Token(), reloaded.Email())
	}
}
