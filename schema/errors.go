// Package schema holds what the ItemsAdder and Oxaren schema packages share.
package schema

import (
	"errors"
	"fmt"
)

// ErrMissingField is matched by every MissingFieldError.
var ErrMissingField = errors.New("missing required field")

// MissingFieldError reports a required field absent from an item definition.
// Field is the dotted path of the field as written in the document, e.g.
// "resource.material".
type MissingFieldError struct {
	Field string
}

// NewMissingFieldError creates a MissingFieldError for the given dotted path.
func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Is makes errors.Is(err, ErrMissingField) true.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
