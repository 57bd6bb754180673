// Package watch reports Markdown posts that are created or changed in a
// directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// Handler is called with the file name (relative to the watched directory)
// once its events have settled. Calls are sequential.
type Handler func(ctx context.Context, name string)

// Watcher watches a single posts directory.
type Watcher struct {
	dir      string
	ext      string
	debounce time.Duration
	logger   *slog.Logger
}

// New creates a watcher for files ending in ext under dir.
func New(dir, ext string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		dir:      dir,
		ext:      ext,
		debounce: debounce,
		logger:   logger,
	}
}

// Run processes file events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.logger.Info("watcher: started", "dir", w.dir)

	ready := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	schedule := func(name string) {
		if t, ok := timers[name]; ok {
			t.Reset(w.debounce)
			return
		}
		timers[name] = time.AfterFunc(w.debounce, func() {
			select {
			case ready <- name:
			case <-ctx.Done():
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher: stopped")
			return nil

		case name := <-ready:
			delete(timers, name)
			w.logger.Debug("watcher: settled", "post", name)
			handle(ctx, name)

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, w.ext) || strings.HasPrefix(name, ".") {
				continue
			}

			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				schedule(name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher: error", "error", err)
		}
	}
}
