package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/caption-remix/internal/metrics"
)

// Screenshot extracts a single frame at the configured seek offset.
// The exit code of ffmpeg is not trusted; only the output file counts.
func (p *implProcessor) Screenshot(ctx context.Context, videoPath, destDir string) (string, bool) {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	outputPath := filepath.Join(destDir, stem+".jpg")

	// -ss after -i: decode up to the offset, slower but frame accurate
	// -vframes 1: exactly one frame
	// -y: overwrite a leftover file
	args := []string{
		"-i", videoPath,
		"-ss", p.cfg.FFmpeg.Seek,
		"-vframes", "1",
		outputPath,
		"-y",
		"-loglevel", "error",
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		p.logger.Warn(ctx, "ffmpeg reported an error for %s: %v", videoPath, err)
	}

	if info, err := os.Stat(outputPath); err != nil || info.IsDir() {
		p.logger.Warn(ctx, "No screenshot produced for %s, skipping", videoPath)
		metrics.ScreenshotsTotal.WithLabelValues("skipped").Inc()
		return "", false
	}

	p.logger.Debug(ctx, "Screenshot written: %s", outputPath)
	metrics.ScreenshotsTotal.WithLabelValues("produced").Inc()
	return outputPath, true
}
