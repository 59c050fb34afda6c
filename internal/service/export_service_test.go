package service

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-report-api/internal/models"
	"github.com/noah-isme/student-report-api/pkg/chart"
)

func exportFixture() []models.ReportDetail {
	d := detail("r1", "c1", day(2024, 3, 10))
	d.Description = "arrived late"
	d.Student.NIS = "1001"
	d.Student.FullName = "Ana"
	d.Student.Classroom = &models.Classroom{ID: "c1", Name: "X IPA 1"}
	return []models.ReportDetail{d}
}

func TestExportServiceReportsCSV(t *testing.T) {
	svc := NewExportService()
	svc.now = fixedClock(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))

	file, err := svc.Reports(exportFixture(), "")
	require.NoError(t, err)
	assert.Equal(t, "reports-20240310-080000.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Payload)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,NIS,Student,Classroom,Description", lines[0])
	assert.Equal(t, "2024-03-10,1001,Ana,X IPA 1,arrived late", lines[1])
}

func TestExportServiceReportsBinaryFormats(t *testing.T) {
	svc := NewExportService()

	pdf, err := svc.Reports(exportFixture(), "PDF")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Payload, []byte("%PDF")))
	assert.True(t, strings.HasSuffix(pdf.Filename, ".pdf"))

	xlsx, err := svc.Reports(exportFixture(), "xlsx")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx.Payload, []byte("PK")))
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService()

	_, err := svc.Reports(exportFixture(), "docx")
	appErr := assertAppError(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, appErr.Fields, "format")

	_, err = svc.Chart(chart.Build("", nil), "csv")
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestExportServiceChart(t *testing.T) {
	svc := NewExportService()

	file, err := svc.Chart(chart.Build("X IPA 1", nil), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "report-analytics-"))
}
