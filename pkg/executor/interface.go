package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// Available reports whether name resolves to an executable on PATH.
	Available(name string) bool
}
