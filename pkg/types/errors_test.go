package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		msg      string
	}{
		{"missing", MissingRequiredField("Teacher", "location"), ErrMissingRequiredField, "missing required field: Teacher.location"},
		{"unknown", UnknownField("Teacher", "fullTimeEmployee"), ErrUnknownField, "unknown field: Teacher.fullTimeEmployee"},
		{"conflict", SchemaConflict("Teacher", "firstName"), ErrSchemaConflict, "schema conflict: Teacher.firstName"},
		{"untyped", &FieldError{Err: ErrUnknownField, Field: "x"}, ErrUnknownField, `unknown field: "x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.EqualError(t, tt.err, tt.msg)

			var fe *FieldError
			require.ErrorAs(t, fmt.Errorf("wrapped: %w", tt.err), &fe)
			assert.Equal(t, tt.sentinel, fe.Err)
		})
	}
}

func TestUnknownType(t *testing.T) {
	err := UnknownType("Ghost")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.EqualError(t, err, `unknown type: "Ghost"`)
	assert.False(t, errors.Is(err, ErrUnknownField))
}
