package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	cause := stderrors.New("file truncated")
	err := NewParsingError("line 3 is not valid JSON", cause)

	assert.Equal(t, ErrTypeParsing, err.Type)
	assert.Contains(t, err.Error(), "PARSING")
	assert.Contains(t, err.Error(), "file truncated")
	assert.ErrorIs(t, err, cause)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewModelError("schema mismatch", nil).
		WithContext("expected_columns", 19).
		WithContext("actual_columns", 7)

	assert.Equal(t, 19, err.Context["expected_columns"])
	assert.Equal(t, 7, err.Context["actual_columns"])
}

func TestAppError_As(t *testing.T) {
	wrapped := fmt.Errorf("step normalize failed: %w", NewParsingError("record 2 has no customer email", nil))

	var appErr *AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestConstructorTypes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want ErrorType
	}{
		{name: "validation", err: NewValidationError("bad column"), want: ErrTypeValidation},
		{name: "storage", err: NewStorageError("disk full", nil), want: ErrTypeStorage},
		{name: "config", err: NewConfigError("bad yaml", nil), want: ErrTypeConfig},
		{name: "model", err: NewModelError("no trees", nil), want: ErrTypeModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Type)
		})
	}
}
