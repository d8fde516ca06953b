package llm

import (
	"context"

	"github.com/nguyentantai21042004/caption-remix/internal/metrics"
)

type instrumented struct {
	next Client
}

// WithMetrics counts every call made through c.
func WithMetrics(c Client) Client {
	return &instrumented{next: c}
}

func (i *instrumented) DescribeImage(ctx context.Context, img Image, prompt string) (string, error) {
	text, err := i.next.DescribeImage(ctx, img, prompt)
	observe("describe_image", err)
	return text, err
}

func (i *instrumented) Complete(ctx context.Context, prompt string) (string, error) {
	text, err := i.next.Complete(ctx, prompt)
	observe("complete", err)
	return text, err
}

func observe(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.LLMCallsTotal.WithLabelValues(op, status).Inc()
}
