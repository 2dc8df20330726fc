package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrValidation       = errors.New("validation error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrQuotaExceeded    = errors.New("case quota exceeded")
	ErrNoReadyDocuments = errors.New("no documents in Completed status")
	ErrRunInProgress    = errors.New("workflow run already in progress")
	ErrIngestionFailed  = errors.New("document extraction failed")
)

// GatewayError reports a failed agent invocation. The workflow runner wraps
// every gateway failure in one of these so callers can tell which agent
// aborted the run.
type GatewayError struct {
	Agent AgentType
	Err   error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("agent %s: %v", e.Agent, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// NewGatewayError wraps err as a failure of the given agent.
func NewGatewayError(agent AgentType, err error) *GatewayError {
	return &GatewayError{Agent: agent, Err: err}
}

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
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
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
