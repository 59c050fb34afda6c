package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/student-report-api/internal/models"
	"github.com/noah-isme/student-report-api/pkg/chart"
	appErrors "github.com/noah-isme/student-report-api/pkg/errors"
	"github.com/noah-isme/student-report-api/pkg/export"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var contentTypes = map[string]string{
	FormatCSV:  "text/csv",
	FormatPDF:  "application/pdf",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var reportHeaders = []string{"Date", "NIS", "Student", "Classroom", "Description"}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders reports and charts into downloadable files.
type ExportService struct {
	csv  *export.CSVExporter
	pdf  *export.PDFExporter
	xlsx *export.XLSXExporter
	now  func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService() *ExportService {
	return &ExportService{
		csv:  export.NewCSVExporter(),
		pdf:  export.NewPDFExporter(),
		xlsx: export.NewXLSXExporter(),
		now:  time.Now,
	}
}

// Reports renders a report listing in the requested format.
func (s *ExportService) Reports(reports []models.ReportDetail, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	data := reportDataset(reports)

	var (
		payload []byte
		err     error
	)
	switch format {
	case FormatCSV:
		payload, err = s.csv.Render(data)
	case FormatPDF:
		payload, err = s.pdf.Render(data, "Student reports")
	case FormatXLSX:
		payload, err = s.xlsx.Render(data, "Reports")
	default:
		return nil, unsupportedFormat(format)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return s.file("reports", format, payload), nil
}

// Chart renders a chart as PDF or XLSX.
func (s *ExportService) Chart(c chart.Chart, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))

	var (
		payload []byte
		err     error
	)
	switch format {
	case FormatPDF:
		payload, err = s.pdf.RenderChart(c)
	case FormatXLSX:
		payload, err = s.xlsx.RenderChart(c)
	default:
		return nil, unsupportedFormat(format)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render chart")
	}
	return s.file("report-analytics", format, payload), nil
}

func (s *ExportService) file(prefix, format string, payload []byte) *ExportFile {
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", prefix, s.now().UTC().Format("20060102-150405"), format),
		ContentType: contentTypes[format],
		Payload:     payload,
	}
}

func reportDataset(reports []models.ReportDetail) export.Dataset {
	rows := make([]map[string]string, 0, len(reports))
	for _, r := range reports {
		classroom := ""
		if r.Student.Classroom != nil {
			classroom = r.Student.Classroom.Name
		}
		rows = append(rows, map[string]string{
			"Date":        r.Date.Format(models.DateLayout),
			"NIS":         r.Student.NIS,
			"Student":     r.Student.FullName,
			"Classroom":   classroom,
			"Description": r.Description,
		})
	}
	return export.Dataset{Headers: reportHeaders, Rows: rows}
}

func unsupportedFormat(format string) error {
	return appErrors.Validation(map[string][]string{
		"format": {fmt.Sprintf("The format %q is not supported.", format)},
	})
}
