package settings

import (
	"path/filepath"
	"testing"

	"github.com/parlorchat/parlor/internal/nav"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetMissingNamespace(t *testing.T) {
	s := openTestStore(t)

	var out map[string]any
	ok, err := s.Get("never_written", &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get of missing namespace reported ok")
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("pane", map[string]any{"collapsed": false}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put("pane", map[string]any{"collapsed": true}); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	var out map[string]any
	ok, err := s.Get("pane", &out)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v, want ok", ok, err)
	}
	if out["collapsed"] != true {
		t.Fatalf("collapsed = %v, want true (latest write wins)", out["collapsed"])
	}
}

func TestStore_UIStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	saved := nav.UIState{
		Page: "chat/room",
		PageProps: map[string]any{
			"account_id": "@alice:example.org",
			"room_id":    "!abc:example.org",
		},
	}
	if err := s.SaveUIState(saved); err != nil {
		t.Fatalf("SaveUIState: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen to simulate a restart.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	loaded, ok, err := s.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if !ok {
		t.Fatal("LoadUIState found nothing after restart")
	}
	if loaded.Page != saved.Page {
		t.Fatalf("Page = %q, want %q", loaded.Page, saved.Page)
	}
	if loaded.PageProps["account_id"] != "@alice:example.org" {
		t.Fatalf("account_id = %v, want @alice:example.org", loaded.PageProps["account_id"])
	}
	if loaded.PageProps["room_id"] != "!abc:example.org" {
		t.Fatalf("room_id = %v, want !abc:example.org", loaded.PageProps["room_id"])
	}
}

func TestStore_LoadUIStateBeforeFirstWrite(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if ok {
		t.Fatal("LoadUIState reported ok before any navigation was persisted")
	}
}
