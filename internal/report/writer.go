package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/caption-remix/internal/models"
)

func (w *implWriter) Write(dir string, records []models.CaptionRecord) ([]string, error) {
	written := make([]string, 0, 4)

	txtPath := filepath.Join(dir, TextFile)
	if err := writeText(txtPath, records); err != nil {
		return written, fmt.Errorf("write %s: %w", TextFile, err)
	}
	written = append(written, txtPath)

	csvPath := filepath.Join(dir, CSVFile)
	if err := writeCSV(csvPath, records); err != nil {
		return written, fmt.Errorf("write %s: %w", CSVFile, err)
	}
	written = append(written, csvPath)

	if hasFailures(records) {
		errPath := filepath.Join(dir, ErrorsFile)
		if err := writeErrors(errPath, records); err != nil {
			return written, fmt.Errorf("write %s: %w", ErrorsFile, err)
		}
		written = append(written, errPath)
	}

	if w.docx {
		docxPath := filepath.Join(dir, DocxFile)
		if err := recordsToDocx(docxPath, records); err != nil {
			return written, fmt.Errorf("write %s: %w", DocxFile, err)
		}
		written = append(written, docxPath)
	}

	return written, nil
}

func writeText(path string, records []models.CaptionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, r := range records {
		fmt.Fprintf(bw, "%s\n", r.ID)
		fmt.Fprintf(bw, "ORIGINAL:\n%s\n", r.Original)
		fmt.Fprintf(bw, "REWRITTEN:\n%s\n\n", r.Rewritten)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func writeCSV(path string, records []models.CaptionRecord) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"filename", "original", "rewritten"})
	for _, r := range records {
		rows = append(rows, []string{r.ID, r.Original, r.Rewritten})
	}
	return writeRows(path, rows)
}

func writeErrors(path string, records []models.CaptionRecord) error {
	rows := [][]string{{"filename", "kind", "message"}}
	for _, r := range records {
		if r.Failure == nil {
			continue
		}
		rows = append(rows, []string{r.ID, string(r.Failure.Kind), r.Failure.Message})
	}
	return writeRows(path, rows)
}

// WriteCSV writes rows to path with standard quoting.
func WriteCSV(path string, rows [][]string) error {
	return writeRows(path, rows)
}

func writeRows(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

func hasFailures(records []models.CaptionRecord) bool {
	for _, r := range records {
		if r.Failed() {
			return true
		}
	}
	return false
}
