// Package watch provides debounced file watching for planning files.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 100

	defaultDebounce = 500 * time.Millisecond
)

// Event represents a planning file change.
type Event struct {
	// Path is the file path relative to the watched root.
	Path string

	// AbsPath is the absolute file path.
	AbsPath string

	// Operation is the type of change.
	Operation Operation
}

// Operation indicates the type of file operation.
type Operation string

// OpCreate, OpModify, and OpDelete enumerate the watch operation types.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Watcher watches a directory tree for changes to files matching a set
// of doublestar glob patterns and emits debounced events.
type Watcher struct {
	root     string
	patterns []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// Debouncing: collect changes before emitting
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	events chan Event

	droppedEvents atomic.Int64
}

// New creates a watcher rooted at root. Patterns are doublestar globs
// matched against paths relative to root; empty patterns match every
// .pddl file.
func New(root string, patterns []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	if len(patterns) == 0 {
		patterns = []string{"**/*.pddl"}
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		root:     root,
		patterns: patterns,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
		events:   make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching the root directory for changes.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("File watcher started",
		"root", w.root,
		"debounce", w.debounce,
		"patterns", w.patterns)

	return nil
}

// Stop stops the watcher. The events channel is closed by
// processEvents when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// addWatchesRecursive adds watches to all directories under root.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && base != "." && path != root {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}

		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent processes a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	relPath, err := filepath.Rel(w.root, path)
	if err != nil {
		return
	}

	if !w.matches(relPath) {
		// Watch newly created directories so files inside them are seen.
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("File change detected",
		"path", relPath,
		"op", event.Op.String())
}

// matches reports whether the relative path matches any watch pattern.
func (w *Watcher) matches(relPath string) bool {
	slashPath := filepath.ToSlash(relPath)
	for _, pattern := range w.patterns {
		if ok, err := doublestar.Match(pattern, slashPath); err == nil && ok {
			return true
		}
	}
	return false
}

// handleNewDirectory adds a watch to a newly created directory.
func (w *Watcher) handleNewDirectory(path string) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			"path", path,
			"error", err)
	} else {
		w.logger.Debug("Added watch for new directory", "path", path)
	}
}

// flushPending emits accumulated changes.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	toProcess := make(map[string]fsnotify.Op, len(w.pending))
	for k, v := range w.pending {
		toProcess[k] = v
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		relPath, _ := filepath.Rel(w.root, path)
		event := Event{
			Path:    relPath,
			AbsPath: path,
		}

		switch {
		case op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename):
			event.Operation = OpDelete
		case op.Has(fsnotify.Create):
			if _, err := os.Stat(path); os.IsNotExist(err) {
				event.Operation = OpDelete
			} else {
				event.Operation = OpCreate
			}
		default:
			if _, err := os.Stat(path); os.IsNotExist(err) {
				event.Operation = OpDelete
			} else {
				event.Operation = OpModify
			}
		}

		w.sendEvent(event)
	}
}

// sendEvent sends an event to the output channel.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event",
			"path", event.Path,
			"op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}
