package report

type implWriter struct {
	docx bool
}

// New creates a Writer. cap.txt and cap.csv are always written; cap.docx
// only when docx is true.
func New(docx bool) Writer {
	return &implWriter{docx: docx}
}
