package mcqgenerator

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// ExportMetadata describes the generation request behind an exported set.
type ExportMetadata struct {
	Count       int    `json:"count"`
	GeneratedAt string `json:"generated_at"`
	Source      string `json:"source"`
	SetID       string `json:"set_id"`
}

// ExportDocument is the structured JSON projection of a session's set.
type ExportDocument struct {
	MCQs     []MCQ          `json:"mcqs"`
	Metadata ExportMetadata `json:"metadata"`
}

// BuildExport projects the session's question set into an export
// document. It is a pure read; nothing in the set is mutated.
func BuildExport(set *MCQSet) ExportDocument {
	doc := ExportDocument{MCQs: []MCQ{}}
	if set == nil {
		return doc
	}
	doc.MCQs = set.MCQs
	if doc.MCQs == nil {
		doc.MCQs = []MCQ{}
	}
	doc.Metadata = ExportMetadata{
		Count:  len(set.MCQs),
		Source: set.Source,
		SetID:  set.ID,
	}
	if !set.GeneratedAt.IsZero() {
		doc.Metadata.GeneratedAt = set.GeneratedAt.Format(time.RFC3339)
	}
	return doc
}

// Letter portrait in points is 612x792; break to a new page once the
// cursor passes this line.
const pdfPageBreakY = 700

// RenderPDF renders the question set as a paginated document: each
// question with its label-prefixed options and a bolded correct-answer
// line. Pure read of session state.
func RenderPDF(set *MCQSet) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 24, "Generated MCQs", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	var mcqs []MCQ
	if set != nil {
		mcqs = set.MCQs
	}

	for i, mcq := range mcqs {
		if pdf.GetY() > pdfPageBreakY {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 16, fmt.Sprintf("Q%d: %s", i+1, mcq.Question), "", "L", false)

		pdf.SetFont("Helvetica", "", 11)
		for _, opt := range mcq.Options {
			pdf.CellFormat(0, 14, fmt.Sprintf("%s. %s", opt.Label, opt.Text), "", 1, "L", false, 0, "")
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 14, "Answer: "+string(mcq.CorrectAnswer), "", 1, "L", false, 0, "")
		pdf.Ln(10)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
