package models

import "time"

// DateLayout is the calendar-date wire format used for report dates.
const DateLayout = "2006-01-02"

// Report is a dated descriptive record attached to a student.
type Report struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	Description string    `db:"description" json:"description"`
	Date        time.Time `db:"date" json:"date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ReportDetail enriches a report with its student and the student's classroom.
type ReportDetail struct {
	Report
	Student StudentDetail `json:"student"`
}

// ClassroomScope constrains which students' reports an actor may see.
// Restricted with a nil ClassroomID matches students without a classroom.
type ClassroomScope struct {
	Restricted  bool
	ClassroomID *string
}

// Unrestricted is the scope of actors that may see every classroom.
var Unrestricted = ClassroomScope{}

// FixedClassroom pins the scope to a single classroom.
func FixedClassroom(classroomID *string) ClassroomScope {
	return ClassroomScope{Restricted: true, ClassroomID: classroomID}
}

// ReportFilter holds resolved list parameters.
type ReportFilter struct {
	Scope       ClassroomScope
	ClassroomID string
	Until       *time.Time
	Page        int
	PageSize    int
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthlyCount is a grouped report count for one calendar month.
type MonthlyCount struct {
	Year  int `db:"year"`
	Month int `db:"month"`
	Total int `db:"total"`
}

// ReportAnalyticsEntry is one bucket of the rolling analytics window.
type ReportAnalyticsEntry struct {
	Month   string `json:"month"`
	Student int    `json:"student"`
}
