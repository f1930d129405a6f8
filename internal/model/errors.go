package model

import "fmt"

// ValidationError reports a malformed canonical-field construction.
// Callers surface it as a rejected request rather than a server fault.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}
