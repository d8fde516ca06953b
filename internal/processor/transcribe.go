package processor

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/caption-remix/internal/llm"
)

const transcribePrompt = "Extract all the text visible in this image. Just give me the text, nothing else."

// transcribe reads the screenshot and asks the model for its on-screen text.
func (p *implProcessor) transcribe(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read screenshot: %w", err)
	}

	img := llm.Image{MIMEType: "image/jpeg", Data: data}
	text, err := p.llm.DescribeImage(ctx, img, transcribePrompt)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", imagePath, err)
	}
	return text, nil
}
