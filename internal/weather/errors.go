package weather

import (
	"errors"
	"fmt"
)

// Kind classifies a service error. The string value is what clients see in
// the error body's "error" field.
type Kind string

const (
	KindValidation       Kind = "VALIDATION_ERROR"
	KindSchema           Kind = "SCHEMA_ERROR"
	KindConfiguration    Kind = "CONFIGURATION_ERROR"
	KindLocationNotFound Kind = "LOCATION_NOT_FOUND"
	KindUpstream         Kind = "UPSTREAM_ERROR"
	KindInternal         Kind = "INTERNAL_ERROR"
)

// Error is the service error taxonomy. Message holds the detailed cause for
// operators; the HTTP layer decides what reaches clients per kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a taxonomy error without an underlying cause.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds a taxonomy error around an underlying cause.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the taxonomy kind from err; unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
