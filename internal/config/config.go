package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.linkdeck)
	ConfigDir string

	// DraftsPath is the SQLite database file holding unsaved article edits
	DraftsPath string

	// SessionFile is the session state file (token, active API)
	SessionFile string

	// SettingsFile is the YAML settings file
	SettingsFile string
)

// Defaults used when the settings file is absent or partial.
const (
	DefaultAPIBaseURL   = "http://localhost:4000/api"
	DefaultItemsPerPage = 10
	DefaultMockPort     = 4000
)

// Settings holds user-editable configuration from config.yaml
type Settings struct {
	APIBaseURL   string `yaml:"apiBaseUrl"`
	ItemsPerPage int    `yaml:"itemsPerPage"`
	MockPort     int    `yaml:"mockPort"`
}

// Initialize sets up the configuration directory and files
// It creates ~/.linkdeck/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".linkdeck")
	DraftsPath = filepath.Join(ConfigDir, "drafts.db")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create empty session file if it doesn't exist
	if _, err := os.Stat(SessionFile); os.IsNotExist(err) {
		defaultSession := []byte(`{"apiBaseUrl":"","token":""}`)
		if err := os.WriteFile(SessionFile, defaultSession, FilePermissions); err != nil {
			return fmt.Errorf("failed to create session file: %w", err)
		}
	}

	// Create default settings file if it doesn't exist
	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// DefaultSettings returns the built-in configuration
func DefaultSettings() Settings {
	return Settings{
		APIBaseURL:   DefaultAPIBaseURL,
		ItemsPerPage: DefaultItemsPerPage,
		MockPort:     DefaultMockPort,
	}
}

// LoadSettings reads config.yaml, filling gaps with defaults
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(SettingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings file: %w", err)
	}

	if settings.APIBaseURL == "" {
		settings.APIBaseURL = DefaultAPIBaseURL
	}
	if settings.ItemsPerPage <= 0 {
		settings.ItemsPerPage = DefaultItemsPerPage
	}
	if settings.MockPort <= 0 {
		settings.MockPort = DefaultMockPort
	}

	return settings, nil
}

// SaveSettings writes config.yaml
func SaveSettings(settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(SettingsFile, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
