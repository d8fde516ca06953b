package llm

import (
	"context"
	"fmt"
	"strings"
)

// New creates a Client for opts.Provider ("gemini" or "openai").
func New(ctx context.Context, opts Options) (Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("create %s client: api key is empty", opts.Provider)
	}

	switch strings.ToLower(opts.Provider) {
	case "", "gemini":
		return newGemini(ctx, opts)
	case "openai":
		return newOpenAI(opts), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
