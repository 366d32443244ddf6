// Package errors defines the structured error type used across libtour.
//
// Every error carries a stable ErrorCode so callers and tests can branch on
// the kind of failure without matching message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCanceled      ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Singleton and shared reference errors
	ErrConstruction   ErrorCode = "CONSTRUCTION_FAILURE"
	ErrRegistryClosed ErrorCode = "REGISTRY_CLOSED"
	ErrReleased       ErrorCode = "REFERENCE_RELEASED"

	// Archive errors
	ErrArchiveEncode  ErrorCode = "ARCHIVE_ENCODE"
	ErrArchiveDecode  ErrorCode = "ARCHIVE_DECODE"
	ErrArchiveInvalid ErrorCode = "ARCHIVE_INVALID"

	// FileSystem errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"

	// Demo errors
	ErrDemoNotFound ErrorCode = "DEMO_NOT_FOUND"
	ErrDemoFailed   ErrorCode = "DEMO_FAILED"
)

// LibtourError represents a structured error with code and details
type LibtourError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *LibtourError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *LibtourError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a LibtourError with the same code.
func (e *LibtourError) Is(target error) bool {
	var targetErr *LibtourError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LibtourError with the given code and message
func New(code ErrorCode, message string) *LibtourError {
	return &LibtourError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LibtourError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LibtourError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *LibtourError {
	if err == nil {
		return nil
	}
	wrapped := New(code, message)
	wrapped.Wrapped = err
	return wrapped
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LibtourError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *LibtourError) WithDetail(key string, value interface{}) *LibtourError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *LibtourError) WithDetails(details map[string]interface{}) *LibtourError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// IsErrorCode checks if the outermost LibtourError in err's chain has code
func IsErrorCode(err error, code ErrorCode) bool {
	var libErr *LibtourError
	if errors.As(err, &libErr) {
		return libErr.Code == code
	}
	return false
}

// HasErrorCode checks every LibtourError in err's chain for code, not just
// the outermost one.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var libErr *LibtourError
		if !errors.As(err, &libErr) {
			return false
		}
		if libErr.Code == code {
			return true
		}
		err = libErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LibtourError
func GetErrorCode(err error) ErrorCode {
	var libErr *LibtourError
	if errors.As(err, &libErr) {
		return libErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LibtourError
func GetErrorDetails(err error) map[string]interface{} {
	var libErr *LibtourError
	if errors.As(err, &libErr) {
		return libErr.Details
	}
	return nil
}
