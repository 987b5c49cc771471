package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrActivityNotFound is returned for a missing activity and for one owned
// by someone else.
var ErrActivityNotFound = errors.New("activity not found")

// Field error codes.
const (
	CodeRequired        = "required"
	CodeTooLong         = "too_long"
	CodeOutOfRange      = "out_of_range"
	CodeFutureTimestamp = "future_timestamp"
	CodeInvalidValue    = "invalid_value"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string
	Message string
	Code    string
}

// ValidationError lists every field that failed validation, not just the
// first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message, Code: code})
}

// OnlyFutureTimestamp reports whether the sole problem is a timestamp after
// the current time.
func (e *ValidationError) OnlyFutureTimestamp() bool {
	return len(e.Fields) == 1 && e.Fields[0].Code == CodeFutureTimestamp
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
