package types

import (
	"errors"
	"fmt"
)

// Schema and validation errors. Every failure returned by the registry,
// merge engine, validator, brand wrapper and discriminator wraps one of
// these, so callers branch with errors.Is.
var (
	ErrSchemaConflict       = errors.New("schema conflict")
	ErrUnknownType          = errors.New("unknown type")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnknownField         = errors.New("unknown field")
	ErrBrandMismatch        = errors.New("brand mismatch")
	ErrNoMatchingVariant    = errors.New("no matching variant")
	ErrInvalidName          = errors.New("invalid name")
)

// FieldError reports a validation or registration failure tied to one
// field of one type. Err is the sentinel it unwraps to.
type FieldError struct {
	Err   error
	Type  string
	Field string
}

func (e *FieldError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%v: %q", e.Err, e.Field)
	}
	return fmt.Sprintf("%v: %s.%s", e.Err, e.Type, e.Field)
}

func (e *FieldError) Unwrap() error { return e.Err }

// MissingRequiredField returns the error for an absent required field.
func MissingRequiredField(typeName, field string) error {
	return &FieldError{Err: ErrMissingRequiredField, Type: typeName, Field: field}
}

// UnknownField returns the error for an undeclared field in a closed schema.
func UnknownField(typeName, field string) error {
	return &FieldError{Err: ErrUnknownField, Type: typeName, Field: field}
}

// SchemaConflict returns the error for incompatible declarations of one field.
func SchemaConflict(typeName, field string) error {
	return &FieldError{Err: ErrSchemaConflict, Type: typeName, Field: field}
}

// UnknownType wraps ErrUnknownType with the type name.
func UnknownType(typeName string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, typeName)
}
