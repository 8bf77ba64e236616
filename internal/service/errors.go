package service

import (
	"errors"
	"fmt"
)

var (
	// ErrIDRequired is returned when an operation is called with an empty id.
	ErrIDRequired = errors.New("id is required")
	// ErrNotFound means the target entity does not exist. It is reported
	// before any ownership comparison, so callers can distinguish a missing
	// entity from a denied one.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized means the entity exists but belongs to another user.
	ErrUnauthorized = errors.New("not the owner")
	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError is a field-level input rejection. Field names the offending
// input field so the caller can attribute the failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
