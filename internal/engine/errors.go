package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every validation failure in this package.
var ErrInvalidInput = errors.New("engine: invalid input")

// InputError describes which field failed validation and why.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("engine: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
