package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/student-report-api/internal/dto"
	"github.com/noah-isme/student-report-api/internal/models"
	appErrors "github.com/noah-isme/student-report-api/pkg/errors"
)

const (
	analyticsCachePrefix  = "reports:analytics:"
	analyticsVersionKey   = "reports:analytics-version"
	defaultReportPageSize = 15
	notPermittedMessage   = "you're not permitted to do this operation"
)

type reportStore interface {
	List(ctx context.Context, filter models.ReportFilter) ([]models.ReportDetail, int, error)
	Create(ctx context.Context, report *models.Report) error
	CountByMonth(ctx context.Context, from, to time.Time) ([]models.MonthlyCount, error)
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
}

// ReportServiceConfig tunes listing, export and analytics behaviour.
type ReportServiceConfig struct {
	PageSize    int
	ExportLimit int
	Location    *time.Location
	// StrictClassroomScope rejects a teacher's classroom filter that points outside their
	// own classroom instead of ANDing it into an empty result.
	StrictClassroomScope bool
	AnalyticsCacheTTL    time.Duration
}

// ListReportsParams carries raw list parameters as received from the client.
type ListReportsParams struct {
	Classroom string
	Date      string
	Page      int
}

// ReportService implements report listing, creation and rolling analytics.
type ReportService struct {
	reports   reportStore
	students  studentFinder
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ReportServiceConfig
	now       func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(reports reportStore, students studentFinder, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg ReportServiceConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultReportPageSize
	}
	if cfg.ExportLimit <= 0 {
		cfg.ExportLimit = 1000
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &ReportService{
		reports:   reports,
		students:  students,
		cache:     cache,
		metrics:   metrics,
		validator: newValidator(validate),
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock overrides the time source.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// List returns one page of reports visible to the actor, newest first.
func (s *ReportService) List(ctx context.Context, actor models.Actor, params ListReportsParams) ([]models.ReportDetail, *models.Pagination, error) {
	filter, err := s.buildFilter(actor, params)
	if err != nil {
		return nil, nil, err
	}
	filter.PageSize = s.cfg.PageSize
	filter.Page = models.ClampPage(params.Page, filter.PageSize)

	start := time.Now()
	reports, total, err := s.reports.List(ctx, filter)
	s.metrics.ObserveDBQuery("reports_list", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}
	return reports, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// ListForExport returns up to the export limit of reports under the same scope and filters as List.
func (s *ReportService) ListForExport(ctx context.Context, actor models.Actor, params ListReportsParams) ([]models.ReportDetail, error) {
	filter, err := s.buildFilter(actor, params)
	if err != nil {
		return nil, err
	}
	filter.Page = 1
	filter.PageSize = s.cfg.ExportLimit

	start := time.Now()
	reports, _, err := s.reports.List(ctx, filter)
	s.metrics.ObserveDBQuery("reports_export", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export reports")
	}
	return reports, nil
}

// Create validates and persists a report dated today for a student the actor may write to.
func (s *ReportService) Create(ctx context.Context, actor models.Actor, req dto.CreateReportRequest) (*models.Report, error) {
	req.StudentID = dto.FlexibleString(strings.TrimSpace(req.StudentID.String()))
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	student, err := s.students.FindByID(ctx, req.StudentID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if !actor.IsAdmin() && !student.InClassroom(actor.ClassroomID) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, notPermittedMessage)
	}

	report := &models.Report{
		StudentID:   student.ID,
		Description: req.Description,
		Date:        s.today(),
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to create report")
	}
	s.metrics.IncReportsCreated()
	s.cache.Bump(ctx, analyticsVersionKey)
	s.cache.Invalidate(ctx, analyticsCachePrefix+"*")
	s.logger.Info("report created",
		zap.String("report_id", report.ID),
		zap.String("student_id", report.StudentID),
		zap.String("actor_id", actor.UserID),
	)
	return report, nil
}

// Analytics counts reports for the current month and the five before it, oldest first.
// The boolean reports whether the result came from cache.
func (s *ReportService) Analytics(ctx context.Context) ([]models.ReportAnalyticsEntry, bool, error) {
	now := s.now().In(s.cfg.Location)
	// Version is read before counting so a result computed across a concurrent Create lands under a retired key.
	version := s.cache.Version(ctx, analyticsVersionKey)
	cacheKey := fmt.Sprintf("%s%04d-%02d:v%d", analyticsCachePrefix, now.Year(), int(now.Month()), version)

	var cached []models.ReportAnalyticsEntry
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, true, nil
	}

	months := RollingMonths(now, analyticsWindowMonths)
	from, to := windowBounds(months)

	start := time.Now()
	counts, err := s.reports.CountByMonth(ctx, from, to)
	s.metrics.ObserveDBQuery("reports_analytics", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report analytics")
	}

	byMonth := make(map[models.YearMonth]int, len(counts))
	for _, c := range counts {
		byMonth[models.YearMonth{Year: c.Year, Month: time.Month(c.Month)}] += c.Total
	}
	entries := make([]models.ReportAnalyticsEntry, 0, len(months))
	for _, ym := range months {
		entries = append(entries, models.ReportAnalyticsEntry{Month: ym.Month.String(), Student: byMonth[ym]})
	}

	s.cache.Set(ctx, cacheKey, entries, s.cfg.AnalyticsCacheTTL)
	return entries, false, nil
}

func (s *ReportService) buildFilter(actor models.Actor, params ListReportsParams) (models.ReportFilter, error) {
	scope := ScopeFor(actor)
	classroom := strings.TrimSpace(params.Classroom)
	if s.cfg.StrictClassroomScope && !scopeAllows(scope, classroom) {
		return models.ReportFilter{}, appErrors.Clone(appErrors.ErrUnauthorized, notPermittedMessage)
	}
	filter := models.ReportFilter{Scope: scope, ClassroomID: classroom}

	if raw := strings.TrimSpace(params.Date); raw != "" {
		until, err := parseReportDate(raw)
		if err != nil {
			return models.ReportFilter{}, appErrors.Validation(map[string][]string{
				"date": {"The date is not a valid date."},
			})
		}
		filter.Until = &until
	}
	return filter, nil
}

func (s *ReportService) today() time.Time {
	now := s.now().In(s.cfg.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// parseReportDate accepts a calendar date or an RFC3339 timestamp and keeps only the date part.
func parseReportDate(raw string) (time.Time, error) {
	for _, layout := range []string{models.DateLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}
