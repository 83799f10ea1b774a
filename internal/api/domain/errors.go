package domain

import (
	"errors"
	"fmt"
)

// Kind tags a failure so transports can map it without inspecting messages
type Kind string

const (
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindNotFound     Kind = "NOT_FOUND"
	KindValidation   Kind = "VALIDATION_ERROR"
	KindDatabase     Kind = "DATABASE_ERROR"
)

// FieldError describes one offending field of a rejected payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the failure returned by every job operation.
// Message is safe to show to callers; Err carries the internal cause.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
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

// NewUnauthorized creates an UNAUTHORIZED error
func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewNotFound creates a NOT_FOUND error. The message must not reveal whether
// the entity exists under another owner.
func NewNotFound(message string, cause error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: cause}
}

// NewValidation creates a VALIDATION_ERROR carrying field level detail
func NewValidation(message string, fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NewDatabase wraps an unexpected store failure
func NewDatabase(cause error) *Error {
	return &Error{Kind: KindDatabase, Message: "Internal server error", Err: cause}
}

// AsError converts any error into an *Error. Unknown errors become
// DATABASE_ERROR so internal detail never reaches the caller.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewDatabase(err)
}

// KindOf returns the kind of err, DATABASE_ERROR for untagged errors
func KindOf(err error) Kind {
	return AsError(err).Kind
}
