package models

import (
	"math"
	"time"
)

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleStudent UserRole = "STUDENT"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	ClassroomID  *string    `db:"classroom_id" json:"classroom_id,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID      string
	Role        UserRole
	ClassroomID *string
}

// IsAdmin reports whether the actor bypasses classroom checks.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	LastPage   int `json:"last_page"`
}

// ClampPage bounds page so that (page-1)*size stays within an int32 OFFSET.
func ClampPage(page, size int) int {
	if page < 1 {
		return 1
	}
	if size <= 0 {
		return page
	}
	if maxPage := math.MaxInt32/size + 1; page > maxPage {
		return maxPage
	}
	return page
}

// NewPagination derives the last page from the total row count.
func NewPagination(page, size, total int) *Pagination {
	last := 1
	if size > 0 && total > 0 {
		last = (total + size - 1) / size
	}
	return &Pagination{Page: page, PageSize: size, TotalCount: total, LastPage: last}
}
