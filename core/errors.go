package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is a validation message for one form field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is a client input error, rendered as a 400 page listing Fields.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (e *ValidationError) Error() string {
	switch {
	case e.Err != nil:
		return e.Err.Error()
	case len(e.Fields) > 0:
		return e.Fields[0].Field + ": " + e.Fields[0].Error
	}
	return "invalid input"
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ShutdownError means the app cannot keep serving safely, eg. stored data broke an invariant the schema enforces.
type ShutdownError struct {
	Reason string
}

func NewShutdownError(format string, args ...interface{}) error {
	return &ShutdownError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ShutdownError) Error() string {
	return "shutdown: " + e.Reason
}

// IsShutdown reports whether err, or any error it wraps, is a ShutdownError.
func IsShutdown(err error) bool {
	var se *ShutdownError
	return errors.As(err, &se)
}
