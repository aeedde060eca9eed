package listing

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no listing has the requested ID.
	ErrNotFound = errors.New("listing not found")

	// ErrInvalidID is returned when an ID is not well-formed for the store.
	ErrInvalidID = errors.New("invalid listing id")
)

// FieldError reports a form value that could not be coerced to its field type.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
