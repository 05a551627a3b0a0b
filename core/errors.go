package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err *ValidationError) Unwrap() error { return err.Err }

// NotFoundError reports a lookup miss on Key, optionally with the closest known key.
type NotFoundError struct {
	Err        error
	Key        string
	Suggestion string
}

func NewNotFoundError(err error, key string, suggestion ...string) error {
	nfe := &NotFoundError{Err: err, Key: key}
	if len(suggestion) > 0 {
		nfe.Suggestion = suggestion[0]
	}
	return nfe
}

func (err *NotFoundError) Error() string {
	msg := fmt.Sprintf("%v: %q", err.Err, err.Key)
	if err.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", err.Suggestion)
	}
	return msg
}

func (err *NotFoundError) Unwrap() error { return err.Err }

// FormatError reports user input that could not be parsed into the expected type.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func NewFormatError(field, value string, err error) error {
	return &FormatError{Field: field, Value: value, Err: err}
}

func (err *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be a whole number", err.Field, err.Value)
}

func (err *FormatError) Unwrap() error { return err.Err }

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
