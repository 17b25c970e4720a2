// Package settings provides durable key/value persistence for UI state.
// Values are JSON-encoded into a single-table SQLite database under
// ~/.local/share/parlor/settings.db by default.
package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/parlorchat/parlor/internal/nav"
)

const defaultStorePath = "~/.local/share/parlor/settings.db"

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	namespace  TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// uiStateNamespace holds the most recent navigation, overwritten on every
// page show.
const uiStateNamespace = "ui_state"

// Store persists namespaced values. Safe for use from multiple
// goroutines; database/sql serializes access.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default settings database path.
func DefaultPath() string {
	return defaultStorePath
}

// Open opens (creating if needed) the settings database at path. An empty
// path uses the default location.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init settings schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes value into namespace, replacing any previous value.
func (s *Store) Put(namespace string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", namespace, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO settings (namespace, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(namespace) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, string(encoded), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", namespace, err)
	}
	return nil
}

// Get decodes the value stored under namespace into out. The second
// return is false when the namespace has never been written.
func (s *Store) Get(namespace string, out any) (bool, error) {
	var encoded string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE namespace = ?`, namespace).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", namespace, err)
	}
	if err := json.Unmarshal([]byte(encoded), out); err != nil {
		return false, fmt.Errorf("decode %s: %w", namespace, err)
	}
	return true, nil
}

// SaveUIState implements nav.StateStore.
func (s *Store) SaveUIState(st nav.UIState) error {
	return s.Put(uiStateNamespace, st)
}

// LoadUIState implements nav.StateStore.
func (s *Store) LoadUIState() (nav.UIState, bool, error) {
	var st nav.UIState
	ok, err := s.Get(uiStateNamespace, &st)
	return st, ok, err
}

func resolvePath(path string) (string, error) {
	if path == "" {
		path = defaultStorePath
	}
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}
