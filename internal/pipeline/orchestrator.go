// Package pipeline runs one extract -> transcribe -> rewrite -> persist pass
// over a folder of videos and reports progress as events.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/nguyentantai21042004/caption-remix/internal/logger"
	"github.com/nguyentantai21042004/caption-remix/internal/metrics"
	"github.com/nguyentantai21042004/caption-remix/internal/models"
	"github.com/nguyentantai21042004/caption-remix/internal/processor"
	"github.com/nguyentantai21042004/caption-remix/internal/report"
)

var (
	ErrNoInputs   = errors.New("no input videos found")
	ErrInputDir   = errors.New("input folder is not readable")
	ErrAlreadyRun = errors.New("orchestrator already used")
)

const (
	LabelExtracting = "Extracting screenshots"
	LabelProcessing = "Processing captions"
)

// Options describes one run.
type Options struct {
	VideoDir  string
	OutputDir string
	Extension string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Orchestrator drives exactly one run from Idle to Done or Failed.
type Orchestrator struct {
	opts   Options
	proc   processor.Processor
	writer report.Writer
	logger logger.Logger

	mu    sync.Mutex
	state State
}

// New creates an Orchestrator in the Idle state.
func New(opts Options, proc processor.Processor, writer report.Writer, log logger.Logger) *Orchestrator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Extension == "" {
		opts.Extension = ".mp4"
	}
	return &Orchestrator{
		opts:   opts,
		proc:   proc,
		writer: writer,
		logger: log,
		state:  StateIdle,
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Run executes the pipeline, sending events to sink. RunFinished is always
// the last event, including when the run panics. A second call fails with
// ErrAlreadyRun.
func (o *Orchestrator) Run(ctx context.Context, sink Sink) (outcome Outcome) {
	if sink == nil {
		sink = func(Event) {}
	}

	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		outcome = Outcome{State: StateFailed, Err: ErrAlreadyRun}
		sink(RunFinished{Outcome: outcome})
		return outcome
	}
	o.state = StateScanning
	o.mu.Unlock()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			outcome.State = StateFailed
			outcome.Err = fmt.Errorf("%s: %v", models.Unknown, r)
		}
		if outcome.Err != nil {
			outcome.State = StateFailed
			o.logger.Error(ctx, "Run failed: %v", outcome.Err)
			sink(LogLine{Text: fmt.Sprintf("Error: %v", outcome.Err)})
		}
		o.setState(outcome.State)
		metrics.StageDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())
		sink(RunFinished{Outcome: outcome})
	}()

	outcome = o.run(ctx, sink)
	return outcome
}

func (o *Orchestrator) run(ctx context.Context, sink Sink) Outcome {
	var out Outcome

	// Scanning
	videos, err := ScanVideos(o.opts.VideoDir, o.opts.Extension)
	if err != nil {
		out.Err = err
		return out
	}
	if len(videos) == 0 {
		out.Err = fmt.Errorf("%w in %s", ErrNoInputs, o.opts.VideoDir)
		return out
	}
	sink(LogLine{Text: fmt.Sprintf("Found %d videos", len(videos))})

	run, err := CreateRunFolder(o.opts.OutputDir, o.opts.Now())
	if err != nil {
		out.Err = err
		return out
	}
	out.RunFolder = run.Path
	sink(LogLine{Text: fmt.Sprintf("Output: %s", run.Path)})
	o.logger.Info(ctx, "Run folder: %s", run.Path)

	// Extracting
	o.setState(StateExtracting)
	stageStart := time.Now()
	sink(LogLine{Text: "--- Extracting screenshots ---"})
	out.Extraction.Attempted = len(videos)
	for i, video := range videos {
		if err := ctx.Err(); err != nil {
			out.Err = err
			return out
		}
		name := filepath.Base(video)
		sink(Progress{Current: i + 1, Total: len(videos), Label: LabelExtracting})
		sink(LogLine{Text: fmt.Sprintf("[Screenshot] %s", name)})

		if path, ok := o.proc.Screenshot(ctx, video, run.Screenshots); ok {
			out.Extraction.Screenshots = append(out.Extraction.Screenshots, path)
		} else {
			out.Extraction.Skipped = append(out.Extraction.Skipped, video)
			sink(LogLine{Text: fmt.Sprintf("    FAILED: no screenshot for %s", name)})
		}
	}
	metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(stageStart).Seconds())
	sink(LogLine{Text: fmt.Sprintf("Extracted %d screenshots (%d skipped)",
		out.Extraction.Produced(), len(out.Extraction.Skipped))})

	// Processing
	o.setState(StateProcessing)
	stageStart = time.Now()
	sink(LogLine{Text: "--- Processing captions ---"})
	shots := out.Extraction.Screenshots
	out.Records = make([]models.CaptionRecord, 0, len(shots))
	for i, shot := range shots {
		if err := ctx.Err(); err != nil {
			out.Err = err
			return out
		}
		name := filepath.Base(shot)
		sink(Progress{Current: i + 1, Total: len(shots), Label: LabelProcessing})
		sink(LogLine{Text: fmt.Sprintf("[%s] Extracting...", name)})

		rec := o.proc.Caption(ctx, shot)
		out.Records = append(out.Records, rec)

		if rec.Failure != nil {
			sink(LogLine{Text: fmt.Sprintf("  ERROR (%s): %s", rec.Failure.Kind, rec.Failure.Message)})
		} else {
			sink(LogLine{Text: fmt.Sprintf("[%s] Done", name)})
		}
	}
	metrics.StageDuration.WithLabelValues("caption").Observe(time.Since(stageStart).Seconds())

	// Persisting
	o.setState(StatePersisting)
	files, err := o.writer.Write(run.Path, out.Records)
	out.Files = files
	if err != nil {
		out.Err = fmt.Errorf("persist results: %w", err)
		return out
	}
	failed := out.FailedItems()
	metrics.RecordsPersistedTotal.WithLabelValues("ok").Add(float64(len(out.Records) - failed))
	metrics.RecordsPersistedTotal.WithLabelValues("failed").Add(float64(failed))

	sink(LogLine{Text: "--- Done! ---"})
	sink(LogLine{Text: fmt.Sprintf("Results saved to: %s", run.Path)})
	o.logger.Info(ctx, "Run complete: %d records, %d failed, %d videos skipped",
		len(out.Records), failed, len(out.Extraction.Skipped))

	out.State = StateDone
	return out
}
