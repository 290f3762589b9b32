// Package watch regenerates features when their request files change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher watches files for changes based on patterns
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	onChange func(path string, op fsnotify.Op)
	logger   zerolog.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(patterns []string, exclude []string, onChange func(path string, op fsnotify.Op), logger zerolog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		patterns: patterns,
		exclude:  exclude,
		onChange: onChange,
		logger:   logger.With().Str("component", "watch").Logger(),
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// SetDebounce changes the quiet period before onChange fires. Zero disables it.
func (fw *FileWatcher) SetDebounce(d time.Duration) {
	fw.debounce = d
}

// AddDirectory recursively adds a directory to the watcher
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path != dir && fw.excluded(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Only watch directories
		if info.IsDir() {
			if err := fw.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", path, err)
			}
		}

		return nil
	})
}

// Start begins watching for file changes
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			fw.stopPending()
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			if fw.shouldWatch(event.Name) {
				fw.schedule(event.Name, event.Op)
			}

			// If a new directory is created, add it to the watcher
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.excluded(event.Name) {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				// Log error but continue watching
				fw.logger.Error().Err(err).Msg("watcher error")
			}
		}
	}
}

func (fw *FileWatcher) schedule(path string, op fsnotify.Op) {
	if fw.debounce <= 0 {
		fw.onChange(path, op)
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()
	if t, ok := fw.pending[path]; ok {
		t.Stop()
	}
	fw.pending[path] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		delete(fw.pending, path)
		fw.mu.Unlock()
		fw.onChange(path, op)
	})
}

func (fw *FileWatcher) stopPending() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	for path, t := range fw.pending {
		t.Stop()
		delete(fw.pending, path)
	}
}

// excluded reports whether the base name of path matches an exclude pattern.
// A trailing "/" in a pattern ("node_modules/") is ignored. Files inside an
// excluded directory never produce events since the directory is not watched.
func (fw *FileWatcher) excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range fw.exclude {
		if matched, _ := filepath.Match(strings.TrimSuffix(pattern, "/"), base); matched {
			return true
		}
	}
	return false
}

// shouldWatch checks if a file should trigger a change event based on patterns
func (fw *FileWatcher) shouldWatch(path string) bool {
	if fw.excluded(path) {
		return false
	}

	base := filepath.Base(path)
	for _, pattern := range fw.patterns {
		// "**/" only widens the match to subdirectories, which every watched
		// directory already is.
		pattern = strings.TrimPrefix(pattern, "**/")
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	fw.stopPending()
	return fw.watcher.Close()
}
