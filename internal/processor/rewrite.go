package processor

import (
	"context"
	"fmt"
)

const rewritePrompt = `Rewrite this caption. Rules:
- Keep the same meaning/concept
- Keep the same tone and energy
- Keep the EXACT same structure (same number of lines, same line breaks)
- If a line has quotes, your rewritten line should have quotes in the same spot
- If a line is short, keep it short. If it's long, keep it long.
- Just give me the rewritten text, nothing else

Original:
%s`

// rewrite produces a style-preserving variant of text.
func (p *implProcessor) rewrite(ctx context.Context, text string) (string, error) {
	out, err := p.llm.Complete(ctx, fmt.Sprintf(rewritePrompt, text))
	if err != nil {
		return "", fmt.Errorf("rewrite: %w", err)
	}
	return out, nil
}
