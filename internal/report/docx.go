package report

import (
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/caption-remix/internal/models"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// recordsToDocx writes one section per record: id heading, then the original
// and rewritten captions with their line breaks kept as paragraphs.
func recordsToDocx(outputPath string, records []models.CaptionRecord) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), "Captions", true, 16)

	for _, r := range records {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), r.ID, true, 14)

		addStyledRun(doc.AddParagraph(""), "Original", true, fontSize)
		addLines(doc, r.Original)

		addStyledRun(doc.AddParagraph(""), "Rewritten", true, fontSize)
		addLines(doc, r.Rewritten)

		if r.Failure != nil {
			p := doc.AddParagraph("")
			p.AddText(r.Failure.Marker()).Font(fontName).Size(fontSize).Color("C00000")
		}
	}

	return doc.SaveTo(outputPath)
}

func addLines(doc *docx.RootDoc, text string) {
	for _, line := range strings.Split(text, "\n") {
		addStyledRun(doc.AddParagraph(""), line, false, fontSize)
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
