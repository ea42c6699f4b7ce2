package indexer

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches rapid file events into one re-extraction.
const watchDebounce = 500 * time.Millisecond

// Watch watches the root directory and re-runs extraction whenever a
// relevant file changes. Each fresh result is passed to onResult. Blocks
// until the context is cancelled.
func (e *engine) Watch(ctx context.Context, onResult func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := e.addDirectoriesRecursively(watcher, e.config.RootDir); err != nil {
		return err
	}

	var debounceTimer *time.Timer
	reextractCh := make(chan struct{}, 1)
	changed := 0

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !e.shouldProcessEvent(event) {
				continue
			}
			changed++

			// New directories need to be added to the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := e.addDirectoriesRecursively(watcher, event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case reextractCh <- struct{}{}:
				default:
				}
			})

		case <-reextractCh:
			log.Printf("Re-extracting due to changes in %d file(s)...", changed)
			changed = 0

			result, err := e.Extract(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Printf("Error during re-extraction: %v", err)
				continue
			}
			if onResult != nil {
				onResult(result)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// shouldProcessEvent checks if an event should trigger re-extraction.
func (e *engine) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	relPath, err := filepath.Rel(e.config.RootDir, event.Name)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	if e.discovery.shouldIgnore(relPath) {
		return false
	}

	// Directory events matter for the watch set even without a pattern match.
	if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
		return true
	}

	return e.discovery.matchesAnyPattern(relPath, e.discovery.codePatterns)
}

// addDirectoriesRecursively adds all non-ignored directories to the watcher.
func (e *engine) addDirectoriesRecursively(watcher *fsnotify.Watcher, rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(e.config.RootDir, path)
		if err != nil {
			return nil
		}
		if relPath != "." && e.discovery.shouldIgnore(filepath.ToSlash(relPath)) {
			return filepath.SkipDir
		}

		if err := watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
