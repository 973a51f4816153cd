package domain

import (
	"errors"
	"net/http"
)

// ErrorSource points at the request field that caused a validation-style
// failure.
type ErrorSource struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// AppError is the tagged domain error: an HTTP status plus a message, and for
// validation-style failures a list of field-level sources. Store adapters and
// usecases return AppError directly so no layer has to sniff error shapes.
type AppError struct {
	StatusCode int
	Message    string
	Sources    []ErrorSource
}

func (e *AppError) Error() string { return e.Message }

// New builds an AppError with an arbitrary status.
func New(status int, message string) *AppError {
	return &AppError{StatusCode: status, Message: message}
}

// NewBadRequest 400 with field-level sources.
func NewBadRequest(message string, sources ...ErrorSource) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message, Sources: sources}
}

// NewUnauthorized 401.
func NewUnauthorized(message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message}
}

// NewForbidden 403.
func NewForbidden(message string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Message: message}
}

// NewNotFound 404.
func NewNotFound(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

// NewConflict 409.
func NewConflict(message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: message}
}

// AsAppError unwraps err into an AppError if it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
