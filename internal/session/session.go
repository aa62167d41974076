package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tinybio/linkdeck/internal/config"
)

// Session is the persisted state between runs: which API the console
// talks to and the bearer token obtained from the login endpoint.
type Session struct {
	APIBaseURL string `json:"apiBaseUrl,omitempty"`
	Token      string `json:"token,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Manager handles loading and saving the session file
type Manager struct {
	session *Session
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{session: &Session{}}
}

// Load loads the session from disk; a missing file yields an empty session
func (m *Manager) Load() error {
	data, err := os.ReadFile(config.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			m.session = &Session{}
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	m.session = &session
	return nil
}

// Save writes the session to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(config.SessionFile, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// APIBaseURL returns the session override, or fallback when unset
func (m *Manager) APIBaseURL(fallback string) string {
	if m.session.APIBaseURL != "" {
		return m.session.APIBaseURL
	}
	return fallback
}

// SetAPIBaseURL overrides the API base URL for this session
func (m *Manager) SetAPIBaseURL(url string) {
	m.session.APIBaseURL = url
}

// Token returns the stored bearer token (empty when logged out)
func (m *Manager) Token() string {
	return m.session.Token
}

// SetCredentials stores the token and account email after login
func (m *Manager) SetCredentials(token, email string) {
	m.session.Token = token
	m.session.Email = email
}

// Email returns the logged-in account email
func (m *Manager) Email() string {
	return m.session.Email
}

// ClearCredentials drops the stored token
func (m *Manager) ClearCredentials() {
	m.session.Token = ""
	m.session.Email = ""
}
