package policy

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the engine whenever the policy file at path changes. It
// returns once the watcher is installed; reloads happen in the background
// until ctx is canceled. A policy that fails to compile is logged and skipped,
// leaving the previous policy active.
func Watch(ctx context.Context, path string, engine *Engine) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory, not the file: editors often replace files, which
	// drops a direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				content, err := os.ReadFile(path)
				if err != nil {
					log.Printf("WARN: failed to read policy file %s: %v", path, err)
					continue
				}
				if err := engine.Reload(ctx, string(content)); err != nil {
					log.Printf("WARN: policy reload failed: %v", err)
					continue
				}
				log.Printf("policy reloaded from %s", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("WARN: policy watcher error: %v", err)
			}
		}
	}()

	return nil
}
