package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError. Handlers map each kind to an HTTP status.
type ErrorKind string

const (
	KindValidation         ErrorKind = "VALIDATION_ERROR"
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindConflict           ErrorKind = "CONFLICT"
	KindUnauthorized       ErrorKind = "UNAUTHORIZED"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindUpstream           ErrorKind = "UPSTREAM_ERROR"
	KindInternal           ErrorKind = "INTERNAL_ERROR"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewValidationError(fields ...FieldError) *AppError {
	msg := "Validation failed"
	if len(fields) == 1 {
		msg = fields[0].Msg
	}
	return &AppError{Kind: KindValidation, Message: msg, Fields: fields}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{Kind: KindInvalidCredentials, Message: "Invalid Credentials"}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Server Error", Err: err}
}

// KindOf returns the kind of the first AppError in err's chain, or
// KindInternal for anything else.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
