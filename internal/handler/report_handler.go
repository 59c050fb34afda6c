package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-report-api/internal/dto"
	"github.com/noah-isme/student-report-api/internal/middleware"
	"github.com/noah-isme/student-report-api/internal/models"
	"github.com/noah-isme/student-report-api/internal/service"
	"github.com/noah-isme/student-report-api/pkg/chart"
	appErrors "github.com/noah-isme/student-report-api/pkg/errors"
	"github.com/noah-isme/student-report-api/pkg/response"
)

const retrievedMessage = "data successfully retrieved"

type reportService interface {
	List(ctx context.Context, actor models.Actor, params service.ListReportsParams) ([]models.ReportDetail, *models.Pagination, error)
	ListForExport(ctx context.Context, actor models.Actor, params service.ListReportsParams) ([]models.ReportDetail, error)
	Create(ctx context.Context, actor models.Actor, req dto.CreateReportRequest) (*models.Report, error)
	Analytics(ctx context.Context) ([]models.ReportAnalyticsEntry, bool, error)
}

type reportExporter interface {
	Reports(reports []models.ReportDetail, format string) (*service.ExportFile, error)
	Chart(c chart.Chart, format string) (*service.ExportFile, error)
}

// ReportHandler exposes student report endpoints.
type ReportHandler struct {
	reports  reportService
	exporter reportExporter
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService, exporter reportExporter) *ReportHandler {
	return &ReportHandler{reports: reports, exporter: exporter}
}

// List godoc
// @Summary List student reports
// @Description Teachers only see reports of their own classroom
// @Tags Reports
// @Produce json
// @Param date query string false "Upper bound date (YYYY-MM-DD)"
// @Param classroom query string false "Classroom ID"
// @Param page query int false "Page number"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	reports, pagination, err := h.reports.List(c.Request.Context(), actor, listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, retrievedMessage, dto.NewReportResources(reports), pagination)
}

// Create godoc
// @Summary Create a report for a student
// @Description The report is dated today; any client supplied date is ignored
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.CreateReportRequest true "Report payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "validation error"))
		return
	}
	if _, err := h.reports.Create(c.Request.Context(), actor, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "report successfully created")
}

// Analytics godoc
// @Summary Rolling six month report counts
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/analytics [get]
func (h *ReportHandler) Analytics(c *gin.Context) {
	entries, hit, err := h.reports.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, retrievedMessage, entries, nil, middleware.ExtractMeta(c))
}

// AnalyticsChart godoc
// @Summary Bar chart of the rolling report counts
// @Tags Reports
// @Produce json
// @Produce application/pdf
// @Param format query string false "json, pdf or xlsx"
// @Param class query string false "Style class applied by the client"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reports/analytics/chart [get]
func (h *ReportHandler) AnalyticsChart(c *gin.Context) {
	var query dto.AnalyticsChartQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid chart query"))
		return
	}
	entries, hit, err := h.reports.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	points := make([]chart.Point, 0, len(entries))
	for _, e := range entries {
		points = append(points, chart.Point{Month: e.Month, Count: e.Student})
	}
	view := chart.Build(query.ClassName, points)

	format := strings.ToLower(strings.TrimSpace(query.Format))
	if format == "" || format == "json" {
		middleware.SetCacheHit(c, hit)
		response.JSON(c, http.StatusOK, retrievedMessage, view, nil, middleware.ExtractMeta(c))
		return
	}
	file, err := h.exporter.Chart(view, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// Export godoc
// @Summary Download reports as CSV, PDF or XLSX
// @Tags Reports
// @Produce text/csv
// @Param format query string false "csv, pdf or xlsx"
// @Param date query string false "Upper bound date (YYYY-MM-DD)"
// @Param classroom query string false "Classroom ID"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	reports, err := h.reports.ListForExport(c.Request.Context(), actor, listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.Reports(reports, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// listParams reads filters leniently; a malformed page falls back to the first page.
func listParams(c *gin.Context) service.ListReportsParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}
	return service.ListReportsParams{
		Classroom: c.Query("classroom"),
		Date:      c.Query("date"),
		Page:      page,
	}
}
