package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/caption-remix/internal/config"
	"github.com/nguyentantai21042004/caption-remix/internal/llm"
	"github.com/nguyentantai21042004/caption-remix/internal/llm/llmtest"
	"github.com/nguyentantai21042004/caption-remix/internal/logger"
	"github.com/nguyentantai21042004/caption-remix/internal/models"
	"github.com/nguyentantai21042004/caption-remix/internal/processor"
	"github.com/nguyentantai21042004/caption-remix/internal/report"
	"github.com/nguyentantai21042004/caption-remix/pkg/executor/executortest"
)

var fixedNow = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC) }

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) sink(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) logText() string {
	var b strings.Builder
	for _, e := range r.events {
		if l, ok := e.(LogLine); ok {
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("video"), 0644))
	}
}

// fakeFFmpeg writes the video stem as the screenshot body, except for
// stems listed in fail.
func fakeFFmpeg(fail ...string) *executortest.Fake {
	skip := map[string]bool{}
	for _, f := range fail {
		skip[f] = true
	}
	return &executortest.Fake{Run: func(name string, args []string) (string, error) {
		stem := strings.TrimSuffix(filepath.Base(args[1]), filepath.Ext(args[1]))
		if skip[stem] {
			return "", errors.New("exit status 1")
		}
		return "", os.WriteFile(args[6], []byte(stem), 0644)
	}}
}

func newTestOrchestrator(t *testing.T, videoDir, outDir string, exec *executortest.Fake, client llm.Client) *Orchestrator {
	t.Helper()
	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())
	proc := processor.New(cfg, exec, client, logger.Discard())
	return New(Options{VideoDir: videoDir, OutputDir: outDir, Now: fixedNow}, proc, report.New(false), logger.Discard())
}

func TestRunEndToEnd(t *testing.T) {
	videos, out := t.TempDir(), t.TempDir()
	touch(t, videos, "a.mp4", "b.mp4", "c.mp4", "notes.txt")

	client := &llmtest.Fake{
		DescribeFunc: func(img llm.Image, prompt string) (string, error) {
			if string(img.Data) == "c" {
				return "", errors.New("quota exceeded")
			}
			return "TEXT " + strings.ToUpper(string(img.Data)), nil
		},
		CompleteFunc: func(prompt string) (string, error) { return "rewritten", nil },
	}
	o := newTestOrchestrator(t, videos, out, fakeFFmpeg("b"), client)

	rec := &recorder{}
	res := o.Run(context.Background(), rec.sink)

	require.NoError(t, res.Err)
	assert.Equal(t, StateDone, res.State)
	assert.Equal(t, StateDone, o.State())
	assert.Equal(t, filepath.Join(out, "run_240309_1405"), res.RunFolder)

	assert.Equal(t, 3, res.Extraction.Attempted)
	assert.Equal(t, 2, res.Extraction.Produced())
	assert.Equal(t, []string{filepath.Join(videos, "b.mp4")}, res.Extraction.Skipped)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "a", res.Records[0].ID)
	assert.Equal(t, "TEXT A", res.Records[0].Original)
	assert.Equal(t, "rewritten", res.Records[0].Rewritten)
	assert.Equal(t, "c", res.Records[1].ID)
	require.NotNil(t, res.Records[1].Failure)
	assert.Equal(t, models.TranscriptionFailed, res.Records[1].Failure.Kind)
	assert.Empty(t, res.Records[1].Rewritten)
	assert.Equal(t, 1, res.FailedItems())

	// rewrite is only attempted for a
	assert.Equal(t, 1, client.CompleteCount())

	txt, err := os.ReadFile(filepath.Join(res.RunFolder, report.TextFile))
	require.NoError(t, err)
	assert.NotContains(t, string(txt), "b\nORIGINAL")
	assert.Contains(t, string(txt), "ERROR (transcription_failed): quota exceeded")
	assert.FileExists(t, filepath.Join(res.RunFolder, report.CSVFile))
	assert.FileExists(t, filepath.Join(res.RunFolder, report.ErrorsFile))
	assert.FileExists(t, filepath.Join(res.RunFolder, "screenshots", "a.jpg"))

	logs := rec.logText()
	assert.Contains(t, logs, "FAILED: no screenshot for b.mp4")
	assert.Contains(t, logs, "ERROR (transcription_failed)")
}

func TestRunEventOrdering(t *testing.T) {
	videos, out := t.TempDir(), t.TempDir()
	touch(t, videos, "a.mp4", "b.mp4")

	o := newTestOrchestrator(t, videos, out, fakeFFmpeg(), &llmtest.Fake{
		DescribeFunc: func(llm.Image, string) (string, error) { return "x", nil },
		CompleteFunc: func(string) (string, error) { return "y", nil },
	})
	rec := &recorder{}
	o.Run(context.Background(), rec.sink)

	require.NotEmpty(t, rec.events)
	finished := 0
	for _, e := range rec.events {
		if _, ok := e.(RunFinished); ok {
			finished++
		}
	}
	assert.Equal(t, 1, finished)
	_, ok := rec.events[len(rec.events)-1].(RunFinished)
	assert.True(t, ok, "last event should be RunFinished")

	var progress []Progress
	for _, e := range rec.events {
		if p, ok := e.(Progress); ok {
			progress = append(progress, p)
		}
	}
	assert.Equal(t, []Progress{
		{Current: 1, Total: 2, Label: LabelExtracting},
		{Current: 2, Total: 2, Label: LabelExtracting},
		{Current: 1, Total: 2, Label: LabelProcessing},
		{Current: 2, Total: 2, Label: LabelProcessing},
	}, progress)
}

func TestRunNoInputs(t *testing.T) {
	videos, out := t.TempDir(), t.TempDir()
	touch(t, videos, "readme.md", ".hidden.mp4")
	outBase := filepath.Join(out, "extracted")

	o := newTestOrchestrator(t, videos, outBase, fakeFFmpeg(), &llmtest.Fake{})
	rec := &recorder{}
	res := o.Run(context.Background(), rec.sink)

	assert.ErrorIs(t, res.Err, ErrNoInputs)
	assert.Equal(t, StateFailed, res.State)
	assert.Empty(t, res.RunFolder)
	assert.NoDirExists(t, outBase)
	_, ok := rec.events[len(rec.events)-1].(RunFinished)
	assert.True(t, ok)
}

func TestRunMissingInputDir(t *testing.T) {
	o := newTestOrchestrator(t, filepath.Join(t.TempDir(), "missing"), t.TempDir(), fakeFFmpeg(), &llmtest.Fake{})
	res := o.Run(context.Background(), nil)

	assert.ErrorIs(t, res.Err, ErrInputDir)
	assert.Equal(t, StateFailed, o.State())
}

func TestRunOnlyOnce(t *testing.T) {
	videos := t.TempDir()
	touch(t, videos, "a.mp4")
	o := newTestOrchestrator(t, videos, t.TempDir(), fakeFFmpeg(), &llmtest.Fake{})

	first := o.Run(context.Background(), nil)
	require.NoError(t, first.Err)

	second := o.Run(context.Background(), nil)
	assert.ErrorIs(t, second.Err, ErrAlreadyRun)
	assert.Equal(t, StateDone, o.State())
}

func TestRunCancelled(t *testing.T) {
	videos := t.TempDir()
	touch(t, videos, "a.mp4")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := newTestOrchestrator(t, videos, t.TempDir(), fakeFFmpeg(), &llmtest.Fake{})
	res := o.Run(ctx, nil)

	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, StateFailed, res.State)
}

type panicProcessor struct{}

func (panicProcessor) Screenshot(context.Context, string, string) (string, bool) {
	panic("boom")
}

func (panicProcessor) Caption(context.Context, string) models.CaptionRecord {
	return models.CaptionRecord{}
}

func TestRunPanicEndsFailed(t *testing.T) {
	videos := t.TempDir()
	touch(t, videos, "a.mp4")
	o := New(Options{VideoDir: videos, OutputDir: t.TempDir(), Now: fixedNow}, panicProcessor{}, report.New(false), logger.Discard())

	rec := &recorder{}
	res := o.Run(context.Background(), rec.sink)

	assert.Equal(t, StateFailed, res.State)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "boom")
	last, ok := rec.events[len(rec.events)-1].(RunFinished)
	require.True(t, ok)
	assert.Equal(t, StateFailed, last.Outcome.State)
}

func TestCreateRunFolderCollision(t *testing.T) {
	base := t.TempDir()
	now := fixedNow()

	first, err := CreateRunFolder(base, now)
	require.NoError(t, err)
	second, err := CreateRunFolder(base, now)
	require.NoError(t, err)
	third, err := CreateRunFolder(base, now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "run_240309_1405"), first.Path)
	assert.Equal(t, filepath.Join(base, "run_240309_1405_2"), second.Path)
	assert.Equal(t, filepath.Join(base, "run_240309_1405_3"), third.Path)
	assert.DirExists(t, filepath.Join(second.Path, "screenshots"))
}

func TestScanVideos(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.MP4", "a.mp4", ".c.mp4", "d.mov", "e.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp4"), 0755))

	got, err := ScanVideos(dir, ".mp4")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.MP4")}, got)
	assert.Equal(t, 2, CountVideos(dir, ".mp4"))
	assert.Equal(t, 1, CountVideos(dir, ".mov"))
	assert.Equal(t, 0, CountVideos(filepath.Join(dir, "missing"), ".mp4"))
}

func TestStateTerminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateProcessing, false},
		{StateDone, true},
		{StateFailed, true},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Terminal())
		})
	}
}
