// Package errors provides typed errors for the application
package errors

import "errors"

// ErrorType represents the type of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeUpstream
	ErrorTypeNetwork
	ErrorTypeTooLarge
	ErrorTypeInternal
)

// String returns the lowercase name used in logs and metric labels
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeUpstream:
		return "upstream"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeTooLarge:
		return "too_large"
	default:
		return "internal"
	}
}

// baseError is the base implementation for all error types
type baseError struct {
	msg string
}

func (e *baseError) Error() string {
	return e.msg
}

// ValidationError represents malformed input from the user
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// NotFoundError represents missing content
type NotFoundError struct {
	baseError
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{baseError{msg: msg}}
}

// UpstreamError represents a failure reported by a remote service
type UpstreamError struct {
	baseError
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(msg string) *UpstreamError {
	return &UpstreamError{baseError{msg: msg}}
}

// NetworkError represents a transport-level failure
type NetworkError struct {
	baseError
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(msg string) *NetworkError {
	return &NetworkError{baseError{msg: msg}}
}

// TooLargeError represents content exceeding a size limit (413)
type TooLargeError struct {
	baseError
}

// NewTooLargeError creates a new TooLargeError
func NewTooLargeError(msg string) *TooLargeError {
	return &TooLargeError{baseError{msg: msg}}
}

// InternalError represents an internal error (500)
type InternalError struct {
	baseError
}

// NewInternalError creates a new InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{baseError{msg: msg}}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFoundError checks if error is a NotFoundError
func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsUpstreamError checks if error is an UpstreamError
func IsUpstreamError(err error) bool {
	var e *UpstreamError
	return errors.As(err, &e)
}

// IsNetworkError checks if error is a NetworkError
func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// IsTooLargeError checks if error is a TooLargeError
func IsTooLargeError(err error) bool {
	var e *TooLargeError
	return errors.As(err, &e)
}

// IsInternalError checks if error is an InternalError
func IsInternalError(err error) bool {
	var e *InternalError
	return errors.As(err, &e)
}

// TypeOf classifies err, falling back to ErrorTypeInternal
func TypeOf(err error) ErrorType {
	switch {
	case IsValidationError(err):
		return ErrorTypeValidation
	case IsNotFoundError(err):
		return ErrorTypeNotFound
	case IsUpstreamError(err):
		return ErrorTypeUpstream
	case IsNetworkError(err):
		return ErrorTypeNetwork
	case IsTooLargeError(err):
		return ErrorTypeTooLarge
	default:
		return ErrorTypeInternal
	}
}
