package acceptor

import (
	"errors"
	"fmt"
)

// RuntimeError represents an operational error that should lead to exit code 2.
// Examples include missing prerequisites, configuration errors and artifact
// write failures.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// CriticalFailureError signals that one or more critical categories failed
// (exit code 1).
type CriticalFailureError struct {
	Message string
}

func (e *CriticalFailureError) Error() string {
	return fmt.Sprintf("critical failure: %s", e.Message)
}

// NewCriticalFailureError creates a new CriticalFailureError
func NewCriticalFailureError(message string) *CriticalFailureError {
	return &CriticalFailureError{Message: message}
}

// IsCriticalFailureError checks if the error is or wraps a CriticalFailureError
func IsCriticalFailureError(err error) bool {
	var critErr *CriticalFailureError
	return err != nil && errors.As(err, &critErr)
}
