package export

import (
	"bytes"
	"fmt"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFontSize   = 7.5
	pdfRowHeight  = 5.0
	pdfMarginMM   = 10.0
	pdfBreakAtMM  = 190.0 // A4 landscape usable height before a new page
	pdfTitleSize  = 12.0
	pdfHeaderSize = 8.0
)

// BuildPDF renders the projected result as a paginated document: a title
// block followed by one auto-paginating table per section, in a fixed
// small font so rows never wrap. Empty results are refused with ErrNoData
// before the document is started.
func BuildPDF(result domain.ReportResult, filter domain.ReportFilter) (Artifact, error) {
	if result.Empty() {
		return Artifact{}, domain.ErrNoData
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMarginMM, pdfMarginMM, pdfMarginMM)
	pdf.SetAutoPageBreak(false, pdfMarginMM)
	pdf.AddPage()

	writeTitleBlock(pdf, result, filter)

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pdfMarginMM

	for _, s := range Sections(result) {
		writeTable(pdf, s, usable)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("render pdf: %w", err)
	}

	return Artifact{
		Name:    Filename(result.Type, filter, "pdf"),
		MIME:    MIMEPDF,
		Content: buf.Bytes(),
	}, nil
}

func writeTitleBlock(pdf *gofpdf.Fpdf, result domain.ReportResult, filter domain.ReportFilter) {
	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s Report", result.Type), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", pdfHeaderSize)
	for _, row := range Metadata(result, filter) {
		line := row[0] + ": " + row[1]
		for _, extra := range row[2:] {
			line += ", " + extra
		}
		pdf.CellFormat(0, 5, line, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Rows: %d", rowCount(result)), "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

func rowCount(result domain.ReportResult) int {
	return len(result.Records) + len(result.Summaries) +
		len(result.Cumulative) + len(result.Absent)
}

func writeTable(pdf *gofpdf.Fpdf, s Section, usable float64) {
	colWidth := usable / float64(len(s.Header))

	header := func() {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range s.Header {
			pdf.CellFormat(colWidth, pdfRowHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", pdfFontSize)
	}

	pdf.SetFont("Helvetica", "B", pdfHeaderSize)
	pdf.CellFormat(0, 6, s.Title, "", 1, "L", false, 0, "")
	header()

	for _, row := range s.Rows {
		if pdf.GetY()+pdfRowHeight > pdfBreakAtMM {
			pdf.AddPage()
			header()
		}
		for _, cell := range row {
			pdf.CellFormat(colWidth, pdfRowHeight, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}
