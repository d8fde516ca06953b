package processor

import (
	"context"

	"github.com/nguyentantai21042004/caption-remix/internal/models"
)

// Processor defines the per-item operations of the caption pipeline
type Processor interface {
	// Screenshot grabs one still from videoPath into destDir. ok is false when
	// no image was produced; that is the only failure signal.
	Screenshot(ctx context.Context, videoPath, destDir string) (path string, ok bool)
	// Caption transcribes and rewrites one screenshot. Failures are captured
	// in the returned record, never returned as errors.
	Caption(ctx context.Context, imagePath string) models.CaptionRecord
}
