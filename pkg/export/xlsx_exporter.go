package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/student-report-api/pkg/chart"
)

const defaultSheet = "Sheet1"

// XLSXExporter renders datasets and charts into Excel workbooks.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render writes the dataset to a single sheet with a bold header row.
func (e *XLSXExporter) Render(data Dataset, sheet string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	f, name, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := writeRow(f, name, 1, toCells(data.Headers)); err != nil {
		return nil, err
	}
	for i, row := range data.Rows {
		if err := writeRow(f, name, i+2, toCells(data.record(row))); err != nil {
			return nil, err
		}
	}
	if err := styleHeader(f, name, len(data.Headers)); err != nil {
		return nil, err
	}
	return write(f)
}

// RenderChart writes the chart series to a sheet and anchors a clustered column chart beside it.
func (e *XLSXExporter) RenderChart(c chart.Chart) ([]byte, error) {
	f, name, err := newWorkbook("Analytics")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := writeRow(f, name, 1, []interface{}{"Month", c.SeriesLabel}); err != nil {
		return nil, err
	}
	for i, bar := range c.Bars {
		if err := writeRow(f, name, i+2, []interface{}{bar.Month, bar.Value}); err != nil {
			return nil, err
		}
	}
	totalRow := len(c.Bars) + 2
	if err := writeRow(f, name, totalRow, []interface{}{"Total", c.Total}); err != nil {
		return nil, err
	}
	if err := styleHeader(f, name, 2); err != nil {
		return nil, err
	}

	if len(c.Bars) > 0 {
		last := len(c.Bars) + 1
		if err := f.AddChart(name, "D2", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", name),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", name, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", name, last),
			}},
			Title:    []excelize.RichTextRun{{Text: c.Title}},
			Legend:   excelize.ChartLegend{Position: "none"},
			PlotArea: excelize.ChartPlotArea{ShowVal: true},
		}); err != nil {
			return nil, fmt.Errorf("add xlsx chart: %w", err)
		}
	}
	return write(f)
}

func newWorkbook(sheet string) (*excelize.File, string, error) {
	name := strings.TrimSpace(sheet)
	if name == "" {
		name = defaultSheet
	}
	f := excelize.NewFile()
	if name != defaultSheet {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			_ = f.Close()
			return nil, "", fmt.Errorf("rename xlsx sheet: %w", err)
		}
	}
	return f, name, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolve xlsx cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write xlsx row %d: %w", row, err)
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create xlsx style: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("resolve xlsx cell: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", end, style); err != nil {
		return fmt.Errorf("style xlsx header: %w", err)
	}
	return nil
}

func write(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
