package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/caption-remix/internal/metrics"
	"github.com/nguyentantai21042004/caption-remix/internal/report"
)

// TimestampLayout stamps the output file name.
const TimestampLayout = "060102_1504"

func (g *implGenerator) Generate(ctx context.Context, examples []string) Batch {
	batch := make(Batch, len(Categories))

	for i, c := range Categories {
		g.logger.Info(ctx, "[%d/%d] Generating %s...", i+1, len(Categories), c.ID)
		captions := g.fillCategory(ctx, c, examples)
		batch[c.ID] = captions
		metrics.CaptionsGeneratedTotal.WithLabelValues(c.ID).Add(float64(len(captions)))
		g.logger.Info(ctx, "  Total for %s: %d", c.ID, len(captions))
	}

	return batch
}

func (g *implGenerator) fillCategory(ctx context.Context, c Category, examples []string) []string {
	var captions []string

	for len(captions) < g.quota {
		if err := ctx.Err(); err != nil {
			g.logger.Warn(ctx, "  %s stopped: %v", c.ID, err)
			break
		}

		count := min(g.batchSize, g.quota-len(captions))
		prompt := buildPrompt(c, g.sample(examples, g.sampleSize), count)

		text, err := g.client.Complete(ctx, prompt)
		if err != nil {
			g.logger.Error(ctx, "  Error generating %s: %v", c.ID, err)
			break
		}

		lines := ParseLines(text)
		if len(lines) == 0 {
			g.logger.Warn(ctx, "  Empty batch for %s, stopping", c.ID)
			break
		}
		captions = append(captions, lines...)
		g.logger.Info(ctx, "  Generated %d captions (%d/%d)", len(lines), min(len(captions), g.quota), g.quota)
	}

	if len(captions) > g.quota {
		captions = captions[:g.quota]
	}
	return captions
}

func (g *implGenerator) WriteCSV(dir string, batch Batch) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("onscreen_captions_%s.csv", g.now().Format(TimestampLayout)))
	if err := report.WriteCSV(path, Rows(batch)); err != nil {
		return "", fmt.Errorf("write captions csv: %w", err)
	}
	return path, nil
}

// Rows lays batch out as a header of category IDs followed by index-aligned
// rows. Short categories are padded with empty cells, and the row count
// follows the longest category rather than the quota.
func Rows(batch Batch) [][]string {
	header := make([]string, len(Categories))
	longest := 0
	for i, c := range Categories {
		header[i] = c.ID
		longest = max(longest, len(batch[c.ID]))
	}

	rows := make([][]string, 0, longest+1)
	rows = append(rows, header)
	for r := 0; r < longest; r++ {
		row := make([]string, len(Categories))
		for i, c := range Categories {
			if r < len(batch[c.ID]) {
				row[i] = batch[c.ID][r]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
