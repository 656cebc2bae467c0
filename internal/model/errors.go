package model

import (
	"errors"
	"fmt"
)

// ValidationError reports data that does not have the expected shape or range.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error (including wrapped errors)
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports a lookup that matched nothing.
type NotFoundError struct {
	Field   string
	Message string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("not found %s: %s", e.Field, e.Message)
}

// NewNotFoundError constructs NotFoundError
func NewNotFoundError(field, message string) NotFoundError {
	return NotFoundError{Field: field, Message: message}
}

// IsNotFoundError checks if error is NotFoundError
func IsNotFoundError(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}
