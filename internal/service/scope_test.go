package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/student-report-api/internal/models"
)

func TestScopeFor(t *testing.T) {
	assert.Equal(t, models.Unrestricted, ScopeFor(models.Actor{Role: models.RoleAdmin}))

	scope := ScopeFor(models.Actor{Role: models.RoleTeacher, ClassroomID: ptr("c1")})
	assert.True(t, scope.Restricted)
	assert.Equal(t, "c1", *scope.ClassroomID)

	unassigned := ScopeFor(models.Actor{Role: models.RoleTeacher})
	assert.True(t, unassigned.Restricted)
	assert.Nil(t, unassigned.ClassroomID)
}

func TestScopeAllows(t *testing.T) {
	fixed := models.FixedClassroom(ptr("c1"))
	assert.True(t, scopeAllows(fixed, ""))
	assert.True(t, scopeAllows(fixed, "c1"))
	assert.False(t, scopeAllows(fixed, "c2"))
	assert.False(t, scopeAllows(models.FixedClassroom(nil), "c1"))
	assert.True(t, scopeAllows(models.Unrestricted, "c2"))
}
