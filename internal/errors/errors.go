package errors

import (
	"errors"
	"fmt"
)

// ErrRegistryFull is returned when the image registry cannot accept more images
var ErrRegistryFull = errors.New("image registry is full")

// ValidationError represents an error when validation fails
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// CompositionError represents a failure while building the QR image
type CompositionError struct {
	Stage string
	Err   error
}

// Error returns the error message
func (e *CompositionError) Error() string {
	return fmt.Sprintf("composition failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *CompositionError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a lookup of an unknown or expired image
type NotFoundError struct {
	ID string
}

// Error returns the error message
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("image not found: %s", e.ID)
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Section string
	Message string
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Section, e.Message)
}
