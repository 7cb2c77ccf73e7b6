package shared

import (
	"errors"
	"fmt"
)

// ValidationError signals malformed input, rejected before any store access
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError signals an unknown item, recipe, counterparty or offer.
// Surfaced to the caller, no retry.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// ConflictError signals a concurrent mutation that lost a race.
// Safe to retry or surface as "already handled".
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// TransientError signals store or network unavailability. Retryable.
type TransientError struct {
	Message string
	Err     error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func NewTransientError(message string, err error) *TransientError {
	return &TransientError{Message: message, Err: err}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict reports whether err is (or wraps) a ConflictError
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsTransient reports whether err is (or wraps) a TransientError
func IsTransient(err error) bool {
	var target *TransientError
	return errors.As(err, &target)
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
