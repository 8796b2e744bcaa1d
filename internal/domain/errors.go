package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")

	// ErrConfigurationMissing means a required credential or external engine
	// is absent. It is fatal for the operation, not for the process.
	ErrConfigurationMissing = errors.New("configuration missing")

	ErrRenderingUnavailable = errors.New("rendering unavailable")
	ErrRenderingFailed      = errors.New("rendering failed")

	// ErrRemoteSyncFailed wraps network and auth failures of the remote
	// document store. Document state is never changed when it is returned.
	ErrRemoteSyncFailed = errors.New("remote sync failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// MissingConfigError names the setting that must be provided.
type MissingConfigError struct {
	Setting string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("configuration missing: %s is not set", e.Setting)
}

func (e *MissingConfigError) Unwrap() error { return ErrConfigurationMissing }

// NewMissingConfigError returns an error wrapping ErrConfigurationMissing.
func NewMissingConfigError(setting string) *MissingConfigError {
	return &MissingConfigError{Setting: setting}
}
