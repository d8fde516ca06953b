package watcher

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/caption-remix/internal/logger"
)

// New creates a Watcher on inputDir that reports files with extension ext.
func New(inputDir, ext string, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if ext == "" {
		ext = ".mp4"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return &implWatcher{
		inputDir: inputDir,
		ext:      ext,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
	}, nil
}
