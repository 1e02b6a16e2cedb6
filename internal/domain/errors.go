// Package domain defines core types, interfaces, and errors for the directory tooling.
package domain

import "fmt"

// NotFoundError indicates a directory object was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflicting directory object already exists.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AmbiguousError indicates a query matched more objects than the caller
// can safely act on.
type AmbiguousError struct {
	Message string
}

func (e *AmbiguousError) Error() string { return e.Message }

// MutationError indicates a directory write was rejected by the service.
type MutationError struct {
	Message string
}

func (e *MutationError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrAmbiguous creates an AmbiguousError with a formatted message.
func ErrAmbiguous(format string, args ...interface{}) *AmbiguousError {
	return &AmbiguousError{Message: fmt.Sprintf(format, args...)}
}

// ErrMutation creates a MutationError with a formatted message.
func ErrMutation(format string, args ...interface{}) *MutationError {
	return &MutationError{Message: fmt.Sprintf(format, args...)}
}
