// Package errs defines the error taxonomy shared by the store, the services
// and the HTTP layer.
//
// Every error kind follows the same pattern:
//   - a sentinel (ErrValidation, ErrNotFound, ErrConflict, ErrStorage) for errors.Is
//   - a struct carrying the details, retrievable with errors.As
//   - a constructor
//
// Callers classify failures with errors.Is against the sentinels; the HTTP
// layer maps each kind to a status code.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("object not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError reports malformed or out-of-range input
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports a reference to an entity that does not exist
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConflictError reports a uniqueness violation
type ConflictError struct {
	Entity string
	Field  string
	Value  string
	Cause  error
}

func NewConflictError(entity, field, value string, cause error) *ConflictError {
	return &ConflictError{Entity: entity, Field: field, Value: value, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *ConflictError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrConflict}
	}
	return []error{ErrConflict, e.Cause}
}

// StorageError reports an unavailable or failing store
type StorageError struct {
	Op    string
	Cause error
}

func NewStorageError(op string, cause error) *StorageError {
	return &StorageError{Op: op, Cause: cause}
}

func (e *StorageError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("storage: %s failed", e.Op)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrStorage}
	}
	return []error{ErrStorage, e.Cause}
}

// IsClassified reports whether err already belongs to one of the taxonomy kinds
func IsClassified(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrStorage)
}
