package report

import "github.com/nguyentantai21042004/caption-remix/internal/models"

const (
	TextFile   = "cap.txt"
	CSVFile    = "cap.csv"
	ErrorsFile = "errors.csv"
	DocxFile   = "cap.docx"
)

// Writer persists the caption records of one run.
type Writer interface {
	// Write creates the report files in dir and returns their paths.
	Write(dir string, records []models.CaptionRecord) ([]string, error)
}
