package model

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by catalog operations.
var (
	// ErrNotFound is returned when no record matches the requested key.
	ErrNotFound = errors.New("record not found")

	// ErrOutOfStock is returned when issuing a book whose quantity is zero.
	ErrOutOfStock = errors.New("book is out of stock")

	// ErrAlreadyReturned is returned when closing a loan that is already closed.
	ErrAlreadyReturned = errors.New("loan already returned")
)

// ValidationError rejects a record before any write happens. The stored
// state is untouched when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IntegrityError surfaces a storage constraint violation (unique name
// collision, dangling foreign key, restricted delete) to the caller.
type IntegrityError struct {
	Op    string
	Cause error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *IntegrityError) Unwrap() error {
	return e.Cause
}

func NewIntegrityError(op string, cause error) *IntegrityError {
	return &IntegrityError{Op: op, Cause: cause}
}

// IsIntegrityError reports whether err is a constraint violation.
func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

// IsValidationError reports whether err is a pre-write rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
