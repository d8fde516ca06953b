package watcher

import "context"

// Watcher defines the interface for video folder monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Op is the kind of change seen on a video file.
type Op string

const (
	OpCreate Op = "create"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// Event is a change to one eligible video file.
type Event struct {
	Path string
	Op   Op
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, ev Event) error
