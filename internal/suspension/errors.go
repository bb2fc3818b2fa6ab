package suspension

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every precondition failure in this package.
var ErrInvalidInput = errors.New("suspension: invalid input")

// InputError names the offending parameter.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s = %g (%s)", ErrInvalidInput.Error(), e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field string, value float64, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}
