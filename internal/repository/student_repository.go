package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/student-report-api/internal/models"
)

// StudentRepository reads student records referenced by reports.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type studentRow struct {
	ID            string    `db:"id"`
	ClassroomID   *string   `db:"classroom_id"`
	NIS           string    `db:"nis"`
	FullName      string    `db:"full_name"`
	Gender        string    `db:"gender"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	ClassroomName *string   `db:"classroom_name"`
}

// FindByID fetches a student with its classroom. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	const query = `SELECT s.id, s.classroom_id, s.nis, s.full_name, s.gender, s.created_at, s.updated_at, c.name AS classroom_name
        FROM students s
        LEFT JOIN classrooms c ON c.id = s.classroom_id
        WHERE s.id = $1`
	var row studentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	detail := &models.StudentDetail{Student: models.Student{
		ID:          row.ID,
		ClassroomID: row.ClassroomID,
		NIS:         row.NIS,
		FullName:    row.FullName,
		Gender:      row.Gender,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}}
	if row.ClassroomID != nil {
		detail.Classroom = &models.Classroom{ID: *row.ClassroomID}
		if row.ClassroomName != nil {
			detail.Classroom.Name = *row.ClassroomName
		}
	}
	return detail, nil
}
