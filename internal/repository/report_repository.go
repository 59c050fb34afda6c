package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-report-api/internal/models"
)

const (
	defaultReportPageSize = 15
	reportListFrom        = "FROM reports r JOIN students s ON s.id = r.student_id LEFT JOIN classrooms c ON c.id = s.classroom_id"
)

// ReportRepository manages persistence for student reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type reportRow struct {
	ID                 string    `db:"id"`
	StudentID          string    `db:"student_id"`
	Description        string    `db:"description"`
	Date               time.Time `db:"date"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
	StudentNIS         string    `db:"student_nis"`
	StudentFullName    string    `db:"student_full_name"`
	StudentGender      string    `db:"student_gender"`
	StudentClassroomID *string   `db:"student_classroom_id"`
	ClassroomName      *string   `db:"classroom_name"`
}

func (r reportRow) detail() models.ReportDetail {
	student := models.StudentDetail{Student: models.Student{
		ID:          r.StudentID,
		ClassroomID: r.StudentClassroomID,
		NIS:         r.StudentNIS,
		FullName:    r.StudentFullName,
		Gender:      r.StudentGender,
	}}
	if r.StudentClassroomID != nil {
		classroom := &models.Classroom{ID: *r.StudentClassroomID}
		if r.ClassroomName != nil {
			classroom.Name = *r.ClassroomName
		}
		student.Classroom = classroom
	}
	return models.ReportDetail{
		Report: models.Report{
			ID:          r.ID,
			StudentID:   r.StudentID,
			Description: r.Description,
			Date:        r.Date,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		},
		Student: student,
	}
}

// List returns one page of reports visible under the filter, newest date first, plus the total count.
func (r *ReportRepository) List(ctx context.Context, filter models.ReportFilter) ([]models.ReportDetail, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Scope.Restricted {
		if filter.Scope.ClassroomID == nil {
			conditions = append(conditions, "s.classroom_id IS NULL")
		} else {
			conditions = append(conditions, fmt.Sprintf("s.classroom_id = $%d", len(args)+1))
			args = append(args, *filter.Scope.ClassroomID)
		}
	}
	if filter.ClassroomID != "" {
		conditions = append(conditions, fmt.Sprintf("s.classroom_id = $%d", len(args)+1))
		args = append(args, filter.ClassroomID)
	}
	if filter.Until != nil {
		conditions = append(conditions, fmt.Sprintf("r.date <= $%d", len(args)+1))
		args = append(args, filter.Until.Format(models.DateLayout))
	}

	base := fmt.Sprintf("%s WHERE %s", reportListFrom, strings.Join(conditions, " AND "))

	size := filter.PageSize
	if size <= 0 {
		size = defaultReportPageSize
	}
	offset := (models.ClampPage(filter.Page, size) - 1) * size

	query := fmt.Sprintf(`SELECT r.id, r.student_id, r.description, r.date, r.created_at, r.updated_at,
        s.nis AS student_nis, s.full_name AS student_full_name, s.gender AS student_gender, s.classroom_id AS student_classroom_id, c.name AS classroom_name
        %s ORDER BY r.date DESC, r.created_at DESC LIMIT %d OFFSET %d`, base, size, offset)

	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	details := make([]models.ReportDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.detail())
	}
	return details, total, nil
}

// Create inserts a new report row.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = now
	}
	report.UpdatedAt = now
	const query = `INSERT INTO reports (id, student_id, description, date, created_at, updated_at)
        VALUES (:id, :student_id, :description, :date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// CountByMonth groups report counts by calendar month for dates in [from, to).
func (r *ReportRepository) CountByMonth(ctx context.Context, from, to time.Time) ([]models.MonthlyCount, error) {
	const query = `SELECT EXTRACT(YEAR FROM r.date)::int AS year, EXTRACT(MONTH FROM r.date)::int AS month, COUNT(*) AS total
        FROM reports r WHERE r.date >= $1 AND r.date < $2 GROUP BY 1, 2 ORDER BY 1, 2`
	var counts []models.MonthlyCount
	if err := r.db.SelectContext(ctx, &counts, query, from.Format(models.DateLayout), to.Format(models.DateLayout)); err != nil {
		return nil, fmt.Errorf("count reports by month: %w", err)
	}
	return counts, nil
}
