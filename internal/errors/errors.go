package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeInvalidCredentials indicates the identity provider rejected the
	// submitted credentials.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeProviderUnavailable indicates the identity provider could not be
	// reached or answered with a transport-level failure.
	ErrCodeProviderUnavailable ErrorCode = "provider_unavailable"
	// ErrCodeMalformedIdentity indicates the provider answered but its
	// identity payload could not be interpreted.
	ErrCodeMalformedIdentity ErrorCode = "malformed_identity"
	// ErrCodeUnauthenticated indicates the request carries no valid session.
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeForbidden indicates the session lacks the required role.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUpstream indicates the external store API failed.
	ErrCodeUpstream ErrorCode = "upstream"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// InvalidCredentials creates a new InvalidCredentials error.
func InvalidCredentials(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidCredentials, Message: message}
}

// ProviderUnavailable creates a new ProviderUnavailable error wrapping cause.
func ProviderUnavailable(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeProviderUnavailable, Message: message, Cause: cause}
}

// MalformedIdentity creates a new MalformedIdentity error wrapping cause.
func MalformedIdentity(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeMalformedIdentity, Message: message, Cause: cause}
}

// Unauthenticated creates a new Unauthenticated error.
func Unauthenticated(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthenticated, Message: message}
}

// Forbidden creates a new Forbidden error.
func Forbidden(message string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Upstream creates a new Upstream error wrapping cause.
func Upstream(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeUpstream, Message: message, Cause: cause}
}

// Internal creates a new Internal error wrapping cause.
func Internal(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Cause: cause}
}

// Wrap attaches a cause to a copy of the given AppError.
func (e *AppError) Wrap(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// CodeOf extracts the ErrorCode from err; unknown errors map to internal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
