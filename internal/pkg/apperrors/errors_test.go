package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	assert.NoError(t, NewValidationError(nil))

	err := NewValidationError([]FieldError{
		{Field: "cgpa", Message: "cgpa must be between 0 and 10"},
		{Field: "department", Message: "department is invalid"},
	})
	require.Error(t, err)

	wrapped := fmt.Errorf("upsert profile: %w", err)
	assert.True(t, errors.Is(wrapped, ErrValidationFailed))

	var vErr *ValidationError
	require.True(t, errors.As(wrapped, &vErr))
	assert.Equal(t, []string{"cgpa", "department"}, vErr.FieldNames())
	assert.Equal(t, "validation failed: cgpa, department", vErr.Error())
}

func TestBadRequestError(t *testing.T) {
	err := fmt.Errorf("export: %w", NewBadRequestError("unsupported export format \"pdf\""))
	assert.True(t, errors.Is(err, ErrBadRequest))

	var custom *CustomError
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, `unsupported export format "pdf"`, custom.Message)

	assert.Equal(t, "bad request", (&CustomError{Err: ErrBadRequest}).Error())
}
