// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/caption-remix/internal/llm"
)

// Fake answers with DescribeFunc/CompleteFunc and records every call.
// A nil func answers with an empty string and no error.
type Fake struct {
	DescribeFunc func(img llm.Image, prompt string) (string, error)
	CompleteFunc func(prompt string) (string, error)

	mu              sync.Mutex
	describeImages  []llm.Image
	completePrompts []string
}

func (f *Fake) DescribeImage(ctx context.Context, img llm.Image, prompt string) (string, error) {
	f.mu.Lock()
	f.describeImages = append(f.describeImages, img)
	fn := f.DescribeFunc
	f.mu.Unlock()

	if fn == nil {
		return "", nil
	}
	return fn(img, prompt)
}

func (f *Fake) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.completePrompts = append(f.completePrompts, prompt)
	fn := f.CompleteFunc
	f.mu.Unlock()

	if fn == nil {
		return "", nil
	}
	return fn(prompt)
}

// DescribeCount is the number of DescribeImage calls so far.
func (f *Fake) DescribeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.describeImages)
}

// CompleteCount is the number of Complete calls so far.
func (f *Fake) CompleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.completePrompts)
}

// CompletePrompts returns a copy of every prompt passed to Complete.
func (f *Fake) CompletePrompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.completePrompts...)
}
