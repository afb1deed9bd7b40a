// Package entity defines the domain types of a summarization run: uploaded documents,
// the selectable models, and the chunk-labeled report a run produces.
package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedDocument indicates a file whose extension is neither .pdf nor .txt
	ErrUnsupportedDocument = errors.New("unsupported document type")

	// ErrUnknownModel indicates a model choice outside the configured catalog
	ErrUnknownModel = errors.New("unknown model")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap exposes the sentinel the validation failure belongs to, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
