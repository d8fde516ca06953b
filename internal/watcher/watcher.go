package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/caption-remix/internal/logger"
)

type implWatcher struct {
	inputDir string
	ext      string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
}

// Start reports changes to eligible videos until ctx is done or Stop is called.
// Handlers run on the watcher goroutine, one at a time.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Debug(ctx, "File watcher started. Monitoring: %s (%s)", w.inputDir, w.ext)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			op, relevant := classify(event.Op)
			if !relevant {
				continue
			}
			if !w.isVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}

			w.logger.Debug(ctx, "Video %s: %s", op, event.Name)
			if err := w.handler(ctx, Event{Path: event.Name, Op: op}); err != nil {
				w.logger.Error(ctx, "Failed to handle %s: %v", event.Name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func classify(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	default:
		return "", false
	}
}

// isVideoFile checks the extension and skips hidden files
func (w *implWatcher) isVideoFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), w.ext)
}
