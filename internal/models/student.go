package models

import "time"

// Classroom groups students and scopes teacher access.
type Classroom struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Student represents a learner registered in the institution.
type Student struct {
	ID          string    `db:"id" json:"id"`
	ClassroomID *string   `db:"classroom_id" json:"classroom_id,omitempty"`
	NIS         string    `db:"nis" json:"nis"`
	FullName    string    `db:"full_name" json:"full_name"`
	Gender      string    `db:"gender" json:"gender"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// StudentDetail carries the student with its classroom, if any.
type StudentDetail struct {
	Student
	Classroom *Classroom `json:"classroom,omitempty"`
}

// InClassroom reports whether the student belongs to the given classroom.
// A nil classroom only matches students without one.
func (s Student) InClassroom(classroomID *string) bool {
	if s.ClassroomID == nil || classroomID == nil {
		return s.ClassroomID == nil && classroomID == nil
	}
	return *s.ClassroomID == *classroomID
}
