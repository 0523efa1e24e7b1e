package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrRunFailed is returned when an indexing run cannot proceed at all
	ErrRunFailed = errors.New("indexing run failed")

	// ErrRunNotFound is returned when a run ID is unknown
	ErrRunNotFound = errors.New("run not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// RunFailureError represents a failure that prevents the walk from starting,
// such as a missing or unreadable root directory.
type RunFailureError struct {
	Root  string
	Cause error
}

func (e *RunFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot index '%s': %v", e.Root, e.Cause)
	}
	return fmt.Sprintf("cannot index '%s'", e.Root)
}

func (e *RunFailureError) Is(target error) bool {
	return target == ErrRunFailed
}

func (e *RunFailureError) Unwrap() error {
	return e.Cause
}

// NewRunFailureError creates a new RunFailureError
func NewRunFailureError(root string, cause error) *RunFailureError {
	return &RunFailureError{Root: root, Cause: cause}
}

// RunNotFoundError represents a run not found error with context
type RunNotFoundError struct {
	RunID string
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("run with ID '%s' not found", e.RunID)
}

func (e *RunNotFoundError) Is(target error) bool {
	return target == ErrRunNotFound
}

// NewRunNotFoundError creates a new RunNotFoundError
func NewRunNotFoundError(runID string) *RunNotFoundError {
	return &RunNotFoundError{RunID: runID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
