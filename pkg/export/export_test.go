package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/student-report-api/pkg/chart"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Date", "Student", "Description"},
		Rows: []map[string]string{
			{"Date": "2024-03-10", "Student": "Ana", "Description": "late, again"},
			{"Date": "2024-03-09", "Student": "Budi", "Description": strings.Repeat("long ", 40)},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Student,Description", lines[0])
	assert.Equal(t, `2024-03-10,Ana,"late, again"`, lines[1])
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{}, "x")
	assert.Error(t, err)
	_, err = NewXLSXExporter().Render(Dataset{}, "x")
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Student reports")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRenderChart(t *testing.T) {
	out, err := NewPDFExporter().RenderChart(chart.Build("", nil))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset(), "Reports")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reports")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Student", "Description"}, rows[0])
	assert.Equal(t, "Ana", rows[1][1])
}

func TestXLSXExporterRenderChart(t *testing.T) {
	out, err := NewXLSXExporter().RenderChart(chart.Build("", nil))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue("Analytics", "B8")
	require.NoError(t, err)
	assert.Equal(t, "1124", total)
	month, err := f.GetCellValue("Analytics", "A2")
	require.NoError(t, err)
	assert.Equal(t, "January", month)
}

func TestHexColor(t *testing.T) {
	r, g, b := hexColor("#0770e0")
	assert.Equal(t, []int{7, 112, 224}, []int{r, g, b})
	r, g, b = hexColor("nope")
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}
