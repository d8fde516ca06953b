// Package generator fills ten caption categories with model-written lines
// and writes them side by side into one CSV.
package generator

import "context"

// Batch holds the normalized captions collected per category ID.
type Batch map[string][]string

// Generator produces category batches.
type Generator interface {
	// Generate fills every category up to the quota, seeding each request
	// with a sample of examples. A category stops early on a failed or
	// empty request and keeps what it has.
	Generate(ctx context.Context, examples []string) Batch
	// WriteCSV writes batch to dir as onscreen_captions_<stamp>.csv and
	// returns the file path.
	WriteCSV(dir string, batch Batch) (string, error)
}
