// Package executortest provides a recording executor.Executor for tests.
package executortest

import (
	"context"
	"sync"
)

// Call is one recorded Execute invocation.
type Call struct {
	Name string
	Args []string
}

// Fake records calls and delegates to Run when set.
type Fake struct {
	Run     func(name string, args []string) (string, error)
	Missing map[string]bool

	mu    sync.Mutex
	calls []Call
}

func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	run := f.Run
	f.mu.Unlock()

	if run == nil {
		return "", nil
	}
	return run(name, args)
}

func (f *Fake) Available(name string) bool {
	return !f.Missing[name]
}

// Calls returns a copy of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}
