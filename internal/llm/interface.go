// Package llm wraps the hosted model providers behind one small interface:
// a multimodal call that reads an image and a plain text completion.
package llm

import (
	"context"
	"encoding/base64"
	"errors"
)

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// Image is an inline image attachment.
type Image struct {
	MIMEType string
	Data     []byte
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data: URL.
func (i Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

// Client is a hosted model endpoint.
type Client interface {
	// DescribeImage sends img together with prompt and returns the first
	// text segment of the answer, trimmed.
	DescribeImage(ctx context.Context, img Image, prompt string) (string, error)
	// Complete sends a text-only prompt and returns the first text segment
	// of the answer, trimmed.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options selects and configures a provider.
type Options struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	MaxTokens int
}
