// Package prefs handles parlor user preferences persistence.
// Preferences are stored in ~/.config/parlor/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for parlor.
type Prefs struct {
	Theme         string `toml:"theme"`
	CollapsedPane bool   `toml:"collapsed_pane"`
}

const (
	defaultPrefsPath = "~/.config/parlor/prefs.toml"
	defaultTheme     = "Dracula"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if
// missing or malformed.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{Theme: defaultTheme}, nil
	}

	prefs := Prefs{Theme: defaultTheme}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil
	}

	var raw Prefs
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return prefs, nil
	}

	if strings.TrimSpace(raw.Theme) != "" {
		prefs.Theme = raw.Theme
	}
	prefs.CollapsedPane = raw.CollapsedPane
	return prefs, nil
}

// Save writes preferences to the given path, creating parent directories
// as needed.
func Save(path string, prefs Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
