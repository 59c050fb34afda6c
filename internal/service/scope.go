package service

import "github.com/noah-isme/student-report-api/internal/models"

// ScopeFor resolves which classrooms an actor may read. Teachers are pinned to their own
// classroom (including "no classroom"); every other role is unrestricted.
func ScopeFor(actor models.Actor) models.ClassroomScope {
	if actor.Role == models.RoleTeacher {
		return models.FixedClassroom(actor.ClassroomID)
	}
	return models.Unrestricted
}

// scopeAllows reports whether an explicit classroom filter stays inside the scope.
func scopeAllows(scope models.ClassroomScope, classroomID string) bool {
	if !scope.Restricted || classroomID == "" {
		return true
	}
	return scope.ClassroomID != nil && *scope.ClassroomID == classroomID
}
