package config

import (
	"os"
	"path/filepath"
	"testing"
)

func redirectSettings(t *testing.T) {
	t.Helper()
	original := SettingsFile
	SettingsFile = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() { SettingsFile = original })
}

func TestLoadSettings_MissingFileYieldsDefaults(t *testing.T) {
	redirectSettings(t)

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("Expected defaults for a missing file, got %+v", settings)
	}
}

func TestSettings_SaveLoadRoundTrip(t *testing.T) {
	redirectSettings(t)

	custom := Settings{
		APIBaseURL:   "https://admin.example.com/api",
		ItemsPerPage: 25,
		MockPort:     5000,
	}
	if err := SaveSettings(custom); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if loaded != custom {
		t.Errorf("Expected %+v back, got %+v", custom, loaded)
	}
}

func TestLoadSettings_PartialFileFillsGaps(t *testing.T) {
	redirectSettings(t)

	partial := []byte("itemsPerPage: 50\n")
	if err := os.WriteFile(SettingsFile, partial, FilePermissions); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.ItemsPerPage != 50 {
		t.Errorf("Expected the stored page size, got %d", settings.ItemsPerPage)
	}
	if settings.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("Expected the default API base URL, got %q", settings.APIBaseURL)
	}
	if settings.MockPort != DefaultMockPort {
		t.Errorf("Expected the default mock port, got %d", settings.MockPort)
	}
}

func TestLoadSettings_CorruptFileFallsBackToDefaults(t *testing.T) {
	redirectSettings(t)

	if err := os.WriteFile(SettingsFile, []byte("{not yaml"), FilePermissions); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	settings, err := LoadSettings()
	if err == nil {
		t.Error("Expected a parse error for a corrupt file")
	}
	if settings != DefaultSettings() {
		t.Errorf("Expected defaults alongside the error, got %+v", settings)
	}
}
