package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotImplemented   = errors.New("not implemented")
)

// ErrNameExists is the conflict kind raised when a project id is taken.
var ErrNameExists = ErrConflict

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (project, role)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// InvalidOperationError is returned when a request is well-formed but
// not allowed in the current state (e.g. deleting the default project).
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string   { return e.Message }
func (e *InvalidOperationError) StatusCode() int { return http.StatusForbidden }

// Is allows errors.Is() to match against ErrInvalidOperation
func (e *InvalidOperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}
