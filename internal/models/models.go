package models

import "fmt"

// ErrorKind classifies why an item did not make it cleanly through the pipeline.
type ErrorKind string

const (
	ExtractionFailed    ErrorKind = "extraction_failed"
	TranscriptionFailed ErrorKind = "transcription_failed"
	RewriteFailed       ErrorKind = "rewrite_failed"
	Unknown             ErrorKind = "unknown"
)

// Failure is the tagged error carried by a CaptionRecord.
type Failure struct {
	Kind    ErrorKind
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Marker renders the failure the way it is written into the original column.
func (f *Failure) Marker() string {
	return fmt.Sprintf("ERROR (%s): %s", f.Kind, f.Message)
}

// CaptionRecord is the per-screenshot result. Original holds the error marker
// when transcription failed; Rewritten is empty whenever Failure is set.
type CaptionRecord struct {
	ID        string
	Original  string
	Rewritten string
	Failure   *Failure
}

// Failed reports whether the record carries a failure.
func (r CaptionRecord) Failed() bool {
	return r.Failure != nil
}

// ExtractionReport counts what the frame extractor produced.
type ExtractionReport struct {
	Attempted   int
	Screenshots []string
	Skipped     []string
}

// Produced is the number of screenshots written.
func (r ExtractionReport) Produced() int {
	return len(r.Screenshots)
}
