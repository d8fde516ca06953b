package app

import (
	"github.com/nguyentantai21042004/caption-remix/internal/pipeline"
	"github.com/nguyentantai21042004/caption-remix/internal/watcher"
)

// PipelineEventMsg wraps one event sent by the run worker.
type PipelineEventMsg struct {
	Event pipeline.Event
}

// PipelineClosedMsg is sent when the worker channel closes. If no
// RunFinished arrived first, the run is treated as failed.
type PipelineClosedMsg struct{}

// WatchEventMsg reports a change in the selected video folder.
type WatchEventMsg struct {
	Dir   string
	Event watcher.Event
}

// WatchErrorMsg is sent when the folder watcher could not start.
type WatchErrorMsg struct {
	Dir string
	Err error
}
