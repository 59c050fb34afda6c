package dto

import (
	"github.com/noah-isme/student-report-api/internal/models"
)

// CreateReportRequest captures POST /reports payload. Any client-supplied date is ignored.
type CreateReportRequest struct {
	StudentID   FlexibleString `json:"student_id" validate:"required"`
	Description string         `json:"description" validate:"required"`
}

// ClassroomResource is the embedded classroom representation.
type ClassroomResource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StudentResource is the embedded student representation.
type StudentResource struct {
	ID          string             `json:"id"`
	NIS         string             `json:"nis"`
	FullName    string             `json:"full_name"`
	Gender      string             `json:"gender"`
	ClassroomID *string            `json:"classroom_id"`
	Classroom   *ClassroomResource `json:"classroom"`
}

// ReportResource is the wire representation of a listed report.
type ReportResource struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Student     StudentResource `json:"student"`
}

// NewReportResource maps a report detail onto its wire shape.
func NewReportResource(detail models.ReportDetail) ReportResource {
	student := StudentResource{
		ID:          detail.Student.ID,
		NIS:         detail.Student.NIS,
		FullName:    detail.Student.FullName,
		Gender:      detail.Student.Gender,
		ClassroomID: detail.Student.ClassroomID,
	}
	if detail.Student.Classroom != nil {
		student.Classroom = &ClassroomResource{ID: detail.Student.Classroom.ID, Name: detail.Student.Classroom.Name}
	}
	return ReportResource{
		ID:          detail.ID,
		Description: detail.Description,
		Date:        detail.Date.Format(models.DateLayout),
		Student:     student,
	}
}

// NewReportResources maps a page of report details.
func NewReportResources(details []models.ReportDetail) []ReportResource {
	out := make([]ReportResource, 0, len(details))
	for _, d := range details {
		out = append(out, NewReportResource(d))
	}
	return out
}
