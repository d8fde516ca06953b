package processor

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/caption-remix/internal/models"
)

// Caption runs transcription then rewrite for one screenshot.
// Rewrite is never attempted once transcription has failed. A failed rewrite
// keeps the transcription in Original.
func (p *implProcessor) Caption(ctx context.Context, imagePath string) models.CaptionRecord {
	rec := models.CaptionRecord{
		ID: strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath)),
	}

	original, err := p.transcribe(ctx, imagePath)
	if err != nil {
		rec.Failure = &models.Failure{Kind: models.TranscriptionFailed, Message: err.Error()}
		rec.Original = rec.Failure.Marker()
		p.logger.Error(ctx, "[%s] %v", rec.ID, err)
		return rec
	}
	rec.Original = original
	p.logger.Debug(ctx, "[%s] Extracted %d characters", rec.ID, len(original))

	rewritten, err := p.rewrite(ctx, original)
	if err != nil {
		rec.Failure = &models.Failure{Kind: models.RewriteFailed, Message: err.Error()}
		p.logger.Error(ctx, "[%s] %v", rec.ID, err)
		return rec
	}
	rec.Rewritten = rewritten

	return rec
}
