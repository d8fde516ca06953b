package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nguyentantai21042004/caption-remix/internal/models"
)

func sampleRecords() []models.CaptionRecord {
	failure := &models.Failure{Kind: models.TranscriptionFailed, Message: "dial tcp: timeout"}
	return []models.CaptionRecord{
		{ID: "a", Original: "HELLO", Rewritten: "HI"},
		{ID: "b, the sequel", Original: "line one\nline \"two\"", Rewritten: "first, line\r\nsecond"},
		{ID: "c", Original: failure.Marker(), Failure: failure},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return rows
}

func TestWriteText(t *testing.T) {
	dir := t.TempDir()
	records := []models.CaptionRecord{
		{ID: "a", Original: "HELLO", Rewritten: "HI"},
		{ID: "c", Original: "ERROR (transcription_failed): boom"},
	}

	if _, err := New(false).Write(dir, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, TextFile))
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nORIGINAL:\nHELLO\nREWRITTEN:\nHI\n\n" +
		"c\nORIGINAL:\nERROR (transcription_failed): boom\nREWRITTEN:\n\n\n"
	if string(got) != want {
		t.Errorf("cap.txt =\n%q\nwant\n%q", got, want)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()

	if _, err := New(false).Write(dir, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	rows := readCSV(t, filepath.Join(dir, CSVFile))
	if len(rows) != len(records)+1 {
		t.Fatalf("rows = %d, want %d", len(rows), len(records)+1)
	}
	if !reflect.DeepEqual(rows[0], []string{"filename", "original", "rewritten"}) {
		t.Errorf("header = %v", rows[0])
	}
	for i, r := range records {
		// encoding/csv normalizes \r\n inside quoted fields to \n.
		want := []string{r.ID, r.Original, normalizeNewlines(r.Rewritten)}
		if !reflect.DeepEqual(rows[i+1], want) {
			t.Errorf("row %d = %q, want %q", i+1, rows[i+1], want)
		}
	}
}

func normalizeNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func TestErrorsFile(t *testing.T) {
	dir := t.TempDir()

	written, err := New(false).Write(dir, sampleRecords())
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 3 {
		t.Errorf("written = %v, want 3 files", written)
	}

	rows := readCSV(t, filepath.Join(dir, ErrorsFile))
	want := [][]string{
		{"filename", "kind", "message"},
		{"c", "transcription_failed", "dial tcp: timeout"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("errors.csv = %v, want %v", rows, want)
	}
}

func TestNoErrorsFileWhenClean(t *testing.T) {
	dir := t.TempDir()

	if _, err := New(false).Write(dir, []models.CaptionRecord{{ID: "a", Original: "x", Rewritten: "y"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, ErrorsFile)); !os.IsNotExist(err) {
		t.Errorf("errors.csv should not exist, stat err = %v", err)
	}
}

func TestEmptyRecords(t *testing.T) {
	dir := t.TempDir()

	if _, err := New(false).Write(dir, nil); err != nil {
		t.Fatal(err)
	}
	rows := readCSV(t, filepath.Join(dir, CSVFile))
	if len(rows) != 1 {
		t.Errorf("rows = %v, want header only", rows)
	}
	txt, _ := os.ReadFile(filepath.Join(dir, TextFile))
	if len(txt) != 0 {
		t.Errorf("cap.txt = %q, want empty", txt)
	}
}

func TestDocx(t *testing.T) {
	dir := t.TempDir()

	written, err := New(true).Write(dir, sampleRecords())
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	docxPath := filepath.Join(dir, DocxFile)
	if written[len(written)-1] != docxPath {
		t.Errorf("last written = %v, want %v", written[len(written)-1], docxPath)
	}
	info, err := os.Stat(docxPath)
	if err != nil || info.Size() == 0 {
		t.Errorf("cap.docx missing or empty: %v", err)
	}
}

func TestWriteMissingDir(t *testing.T) {
	if _, err := New(false).Write(filepath.Join(t.TempDir(), "nope"), sampleRecords()); err == nil {
		t.Error("Write() into missing dir should fail")
	}
}
