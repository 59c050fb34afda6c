package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrNotFound, "student not found")
	assert.Equal(t, "student not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestWrapUnwraps(t *testing.T) {
	cause := fmt.Errorf("insert failed")
	err := Wrap(cause, ErrPersistence.Code, ErrPersistence.Status, "failed to create report")
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "failed to create report: insert failed", err.Error())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)

	wrapped := fmt.Errorf("context: %w", Clone(ErrUnauthorized, "no"))
	assert.Equal(t, "no", FromError(wrapped).Message)
}

func TestValidation(t *testing.T) {
	err := Validation(map[string][]string{"description": {"The description field is required."}})
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, "validation error", err.Message)
	assert.Len(t, err.Fields, 1)
	assert.Nil(t, ErrValidation.Fields)
}
