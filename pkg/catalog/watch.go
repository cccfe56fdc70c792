package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long Watch waits after the last event before reloading, so
// an editor's write-rename sequence yields one reload.
const settle = 100 * time.Millisecond

// Watch reloads the catalog at path whenever it changes and hands every valid
// result to onLoad. Load failures go to onError and keep the previous catalog
// in service. Watch blocks until ctx ends.
func Watch(ctx context.Context, path string, onLoad func(*Catalog), onError func(error)) error {
	if path == "" {
		return fmt.Errorf("catalog: watch needs a file path")
	}
	if onLoad == nil {
		return fmt.Errorf("catalog: watch needs a load callback")
	}
	if onError == nil {
		onError = func(error) {}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("catalog: resolve %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: start watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("catalog: watch %q: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(settle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onError(err)
		case <-timer.C:
			cat, err := LoadFile(abs)
			if err != nil {
				onError(err)
				continue
			}
			onLoad(cat)
		}
	}
}
