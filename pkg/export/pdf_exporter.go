package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/student-report-api/pkg/chart"
)

// PDFExporter renders datasets and charts into PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a landscape PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(title)), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 277.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, value := range data.record(row) {
			pdf.CellFormat(colWidth, 7, tr(truncateToWidth(pdf, value, colWidth-2)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

// RenderChart draws a bar chart with value labels over each bar, month ticks and a footer total.
func (e *PDFExporter) RenderChart(c chart.Chart) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, tr(c.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 7, tr(c.Description), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	const (
		left       = 20.0
		baseline   = 160.0
		plotHeight = 110.0
		plotWidth  = 257.0
	)
	if len(c.Bars) > 0 {
		slot := plotWidth / float64(len(c.Bars))
		barWidth := slot * 0.6
		scale := plotHeight / float64(c.Max())
		r, g, b := hexColor(c.Color)

		pdf.SetDrawColor(220, 220, 220)
		pdf.Line(left, baseline, left+plotWidth, baseline)

		for i, bar := range c.Bars {
			x := left + float64(i)*slot + (slot-barWidth)/2
			height := float64(bar.Value) * scale
			pdf.SetFillColor(r, g, b)
			pdf.Rect(x, baseline-height, barWidth, height, "F")

			pdf.SetFont("Arial", "", 10)
			pdf.SetXY(x, baseline-height-7)
			pdf.CellFormat(barWidth, 6, bar.Label, "", 0, "C", false, 0, "")

			pdf.SetXY(x, baseline+2)
			pdf.CellFormat(barWidth, 6, tr(bar.Tick), "", 0, "C", false, 0, "")
		}
	}

	pdf.SetXY(15, baseline+14)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, tr(c.Footer), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, tr(c.Caption), "", 1, "L", false, 0, "")

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncateToWidth(pdf *gofpdf.Fpdf, value string, width float64) string {
	if pdf.GetStringWidth(value) <= width {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// hexColor parses #rrggbb, falling back to black.
func hexColor(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
