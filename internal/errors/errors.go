// Package errors carries the application error envelope shared by the
// HTTP surface and the CLI: stable machine-readable codes plus a
// human-readable message, wrapped around the underlying cause.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Stable error codes surfaced to clients.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeMethodNotAllow  = "METHOD_NOT_ALLOWED"
	CodeInternal        = "INTERNAL_ERROR"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeRateLimited     = "RATE_LIMITED"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
)

// AppError is an error with a stable code and optional detail context.
type AppError struct {
	Code    string
	Message string
	Details map[string]any
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.cause }

// WithDetail attaches one detail entry and returns the error for chaining.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// NewValidationError reports a rejected input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewExternalServiceError reports an unavailable or failing collaborator.
func NewExternalServiceError(message string) *AppError {
	return &AppError{Code: CodeExternalService, Message: message}
}

// WrapInternal wraps an unexpected fault. The context parameter keeps the
// signature stable for call sites that carry request-scoped data.
func WrapInternal(_ context.Context, err error, message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, cause: err}
}

// AsAppError extracts an AppError from err's chain, or wraps err as an
// internal error so every failure surfaces with a stable code.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: CodeInternal, Message: err.Error(), cause: err}
}
