package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Transcript is the content of a student's grade transcript.
type Transcript struct {
	Title     string
	Student   [][2]string
	Summary   [][2]string
	Semesters Dataset
	Subjects  Dataset
}

// PDFExporter renders transcripts and plain tables into A4 PDFs.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderTranscript lays out the identity block, the GPA summary and the two tables.
func (e *PDFExporter) RenderTranscript(t Transcript) ([]byte, error) {
	if len(t.Subjects.Headers) == 0 {
		return nil, fmt.Errorf("transcript requires a subjects table")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	title := t.Title
	if title == "" {
		title = "Academic Transcript"
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pairs(pdf, t.Student)
	if len(t.Summary) > 0 {
		pdf.Ln(3)
		pairs(pdf, t.Summary)
	}
	if len(t.Semesters.Headers) > 0 && len(t.Semesters.Rows) > 0 {
		pdf.Ln(5)
		table(pdf, t.Semesters)
	}
	pdf.Ln(5)
	table(pdf, t.Subjects)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pairs(pdf *gofpdf.Fpdf, rows [][2]string) {
	for _, kv := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 7, kv[0], "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, kv[1], "", 1, "", false, 0, "")
	}
}

func table(pdf *gofpdf.Fpdf, data Dataset) {
	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
