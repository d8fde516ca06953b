package pipeline

import (
	"github.com/nguyentantai21042004/caption-remix/internal/models"
)

// State is the orchestrator lifecycle. It only moves forward.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateExtracting
	StateProcessing
	StatePersisting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateExtracting:
		return "extracting"
	case StateProcessing:
		return "processing"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Event is one message from a running pipeline to whoever displays it.
type Event interface {
	isEvent()
}

// LogLine is a human-readable progress line.
type LogLine struct {
	Text string
}

// Progress reports position within the current stage.
type Progress struct {
	Current int
	Total   int
	Label   string
}

// RunFinished is always the last event of a run.
type RunFinished struct {
	Outcome Outcome
}

func (LogLine) isEvent()     {}
func (Progress) isEvent()    {}
func (RunFinished) isEvent() {}

// Sink receives events. It is called from the goroutine running the pipeline.
type Sink func(Event)

// Outcome summarizes a finished run.
type Outcome struct {
	State      State
	RunFolder  string
	Extraction models.ExtractionReport
	Records    []models.CaptionRecord
	Files      []string
	Err        error
}

// FailedItems counts records carrying a failure.
func (o Outcome) FailedItems() int {
	n := 0
	for _, r := range o.Records {
		if r.Failed() {
			n++
		}
	}
	return n
}
