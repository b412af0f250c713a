package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one
	// making the request. The API layer reports it as 404 Not Found.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrAPIKeyMissing indicates the user has not stored a model API key.
	ErrAPIKeyMissing = errors.New("no API key configured")

	// ErrNoCardsGenerated indicates the model answered with an empty card list.
	ErrNoCardsGenerated = errors.New("no cards generated")
)

// ServiceError is a custom error type for service errors that carries the
// failing service and operation.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
