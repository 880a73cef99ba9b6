// Package errors provides application-level error types and utilities.
// The taxonomy mirrors the RPC-style codes used at the API boundary:
// unauthenticated, permission denied, failed precondition, invalid argument,
// not found, conflict, and internal.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeInvalidArgument    ErrorType = "invalid_argument"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeConflict           ErrorType = "conflict"
	ErrorTypeUnauthenticated    ErrorType = "unauthenticated"
	ErrorTypePermissionDenied   ErrorType = "permission_denied"
	ErrorTypeFailedPrecondition ErrorType = "failed_precondition"
	ErrorTypeInternal           ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewInvalidArgumentError creates an error for malformed or rejected input
func NewInvalidArgumentError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidArgument, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates an error for a missing document or row
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates an error for duplicate or conflicting writes
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthenticatedError creates an error for requests with no caller identity
func NewUnauthenticatedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthenticated, http.StatusUnauthorized, message, details)
}

// NewPermissionDeniedError creates an error for callers with the wrong role
func NewPermissionDeniedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypePermissionDenied, http.StatusForbidden, message, details)
}

// NewFailedPreconditionError creates an error for a missing required linked
// entity, e.g. an agency without a billing customer
func NewFailedPreconditionError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeFailedPrecondition, http.StatusPreconditionFailed, message, details)
}

// NewInternalError creates an error for configuration or unexpected provider failures
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

func newAppError(errType ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeConflict
}

// IsInvalidArgumentError checks if the error is an invalid argument error
func IsInvalidArgumentError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeInvalidArgument
}

// IsFailedPreconditionError checks if the error is a failed precondition error
func IsFailedPreconditionError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeFailedPrecondition
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL / SQLite unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "UNIQUE constraint") {
		return true
	}
	return false
}
