// Package draft persists unsaved article edits to a local SQLite
// database so an interrupted editing session can be resumed. The
// buffer is unilaterally local: it is never reconciled with server
// state, and a successful save clears it.
package draft

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// keyPrefix namespaces rows the way the web client namespaced its
// local-storage entries.
const keyPrefix = "draft-changes-"

// Manager owns the drafts database
type Manager struct {
	db *sql.DB
}

// NewManager opens (creating if necessary) the drafts database
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create drafts directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open drafts database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to drafts database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		key TEXT PRIMARY KEY,
		changes TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize drafts schema: %w", err)
	}

	return nil
}

// Merge folds one changed field into the stored override map for the
// entity. Re-saving an identical value is a no-op on the stored state.
func (m *Manager) Merge(entityID, field, value string) error {
	changes, err := m.Get(entityID)
	if err != nil {
		return err
	}
	if changes == nil {
		changes = make(map[string]string)
	}

	changes[field] = value

	data, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("failed to marshal draft changes: %w", err)
	}

	query := `
		INSERT INTO drafts (key, changes, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET changes = excluded.changes, updated_at = excluded.updated_at
	`
	timestamp := time.Now().Local().Format("2006-01-02 15:04:05")
	if _, err := m.db.Exec(query, keyPrefix+entityID, string(data), timestamp); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// Get returns the stored field overrides for an entity, or nil when no
// draft exists.
func (m *Manager) Get(entityID string) (map[string]string, error) {
	var raw string
	err := m.db.QueryRow("SELECT changes FROM drafts WHERE key = ?", keyPrefix+entityID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var changes map[string]string
	if err := json.Unmarshal([]byte(raw), &changes); err != nil {
		// A corrupt row is treated as no draft rather than blocking the editor.
		return nil, nil
	}

	return changes, nil
}

// Clear drops the draft for an entity (called after a successful save)
func (m *Manager) Clear(entityID string) error {
	if _, err := m.db.Exec("DELETE FROM drafts WHERE key = ?", keyPrefix+entityID); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// Count returns the number of stored drafts
func (m *Manager) Count() (int, error) {
	var count int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM drafts").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count drafts: %w", err)
	}
	return count, nil
}

// Close closes the database
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
