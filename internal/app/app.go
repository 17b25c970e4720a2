package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/parlorchat/parlor/internal/backend"
	"github.com/parlorchat/parlor/internal/config"
	"github.com/parlorchat/parlor/internal/nav"
	"github.com/parlorchat/parlor/internal/pages"
	"github.com/parlorchat/parlor/internal/prefs"
	"github.com/parlorchat/parlor/internal/settings"
	"github.com/parlorchat/parlor/internal/state"
	"github.com/parlorchat/parlor/internal/ui"
)

// Options configure the parlor application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/parlor/prefs.toml
}

// Run boots the parlor TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("load prefs: %v", err)
	}

	client, err := backend.NewClient(cfg.DaemonBind)
	if err != nil {
		return fmt.Errorf("init daemon client: %w", err)
	}

	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	defer store.Close()

	// The TUI owns stdout and stderr, so the stdlib logger writes to a
	// file next to the settings database instead. Opened after the
	// settings store so the directory exists.
	logPath := filepath.Join(filepath.Dir(cfg.SettingsPath), "client.log")
	if logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	} else {
		log.Printf("open client log: %v", err)
	}

	members := state.NewStore[backend.Member]()

	registry := nav.NewRegistry()
	registry.RegisterRecyclable(pages.Room, pages.RoomFactory)
	registry.Register(pages.AddAccount, pages.AddAccountFactory)
	registry.Register(pages.Welcome, pages.WelcomeFactory)

	poller := NewPoller(client, members, cfg.PollEvery)
	poller.Start(ctx)

	return ui.Run(ui.Options{
		Context:       ctx,
		Client:        client,
		Members:       members,
		Registry:      registry,
		Settings:      store,
		Config:        cfg,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     opts.PrefsPath,
		LogPath:       logPath,
		CollapsedPane: userPrefs.CollapsedPane,
		OnNavigate: func(ref nav.PageRef) {
			if ref.Page != pages.Room {
				poller.ClearTarget()
				return
			}
			accountID, _ := ref.Props["account_id"].(string)
			roomID, _ := ref.Props["room_id"].(string)
			poller.SetTarget(accountID, roomID)
		},
	})
}
