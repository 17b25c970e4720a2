package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields parlor reads from its config file.
type Config struct {
	DaemonBind       string
	SettingsPath     string
	HistoryCapacity  int
	FilterDebounce   time.Duration
	AutoCollapsePane bool
	PollEvery        time.Duration
}

const (
	defaultConfigPath      = "~/.config/parlor/config.toml"
	defaultDaemonBind      = "127.0.0.1:8449"
	defaultSettingsPath    = "~/.local/share/parlor/settings.db"
	defaultHistoryCapacity = 20
	defaultFilterDebounce  = 16 * time.Millisecond
	defaultPollEvery       = 2 * time.Second
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the parlor config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DaemonBind:       defaultDaemonBind,
		SettingsPath:     mustExpand(defaultSettingsPath),
		HistoryCapacity:  defaultHistoryCapacity,
		FilterDebounce:   defaultFilterDebounce,
		AutoCollapsePane: true,
		PollEvery:        defaultPollEvery,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DaemonBind       string `toml:"daemon_bind"`
		SettingsPath     string `toml:"settings_path"`
		HistoryCapacity  int    `toml:"history_capacity"`
		FilterDebounceMS int    `toml:"filter_debounce_ms"`
		AutoCollapsePane *bool  `toml:"auto_collapse_pane"`
		PollSeconds      int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if bind := strings.TrimSpace(raw.DaemonBind); bind != "" {
		cfg.DaemonBind = bind
	}
	if path := strings.TrimSpace(raw.SettingsPath); path != "" {
		cfg.SettingsPath = mustExpand(path)
	}
	if raw.HistoryCapacity > 0 {
		cfg.HistoryCapacity = raw.HistoryCapacity
	}
	if raw.FilterDebounceMS > 0 {
		cfg.FilterDebounce = time.Duration(raw.FilterDebounceMS) * time.Millisecond
	}
	if raw.AutoCollapsePane != nil {
		cfg.AutoCollapsePane = *raw.AutoCollapsePane
	}
	if raw.PollSeconds > 0 {
		cfg.PollEvery = time.Duration(raw.PollSeconds) * time.Second
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
