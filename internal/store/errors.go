package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all store implementations. Entity-specific
// errors wrap the generic ones, so errors.Is(err, ErrNotFound) matches
// ErrCardSetNotFound too.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrUpdateFailed      = errors.New("update failed")
	ErrDeleteFailed      = errors.New("delete failed")
	ErrTransactionFailed = errors.New("transaction failed")

	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrCardSetNotFound  = fmt.Errorf("%w: card set", ErrNotFound)
	ErrSettingsNotFound = fmt.Errorf("%w: user settings", ErrNotFound)

	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err is any kind of not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of duplicate error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which entity and operation a persistence failure
// belongs to. It unwraps to the underlying cause.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	prefix := fmt.Sprintf("%s %s: %s", e.Entity, e.Operation, e.Message)
	if e.Err == nil {
		return prefix
	}
	return prefix + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
