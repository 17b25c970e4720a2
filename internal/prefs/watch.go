package prefs

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle coalesces the write bursts editors produce into one reload.
const watchSettle = 100 * time.Millisecond

// Watch reloads preferences whenever the file at path changes and calls
// onChange with the result. It watches the parent directory so the file
// may not exist yet (or be replaced atomically) and still be picked up.
// Watching stops when ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(Prefs)) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(resolved)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		var settle *time.Timer
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != resolved {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if settle != nil {
					settle.Stop()
				}
				settle = time.AfterFunc(watchSettle, func() {
					loaded, err := Load(path)
					if err != nil {
						log.Printf("reload prefs: %v", err)
						return
					}
					onChange(loaded)
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("prefs watcher: %v", err)
			}
		}
	}()

	return nil
}
