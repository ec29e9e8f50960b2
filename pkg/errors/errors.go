package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrUsage        ErrorCode = "USAGE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Bibliography errors
	ErrParse         ErrorCode = "PARSE"
	ErrRender        ErrorCode = "RENDER"
	ErrUnknownFormat ErrorCode = "UNKNOWN_FORMAT"

	// Online lookup errors
	ErrDOINotFound ErrorCode = "DOI_NOT_FOUND"
	ErrNoAbstract  ErrorCode = "NO_ABSTRACT"
	ErrNetwork     ErrorCode = "NETWORK"

	// Help topic errors
	ErrTopicNotFound ErrorCode = "TOPIC_NOT_FOUND"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
)

// BibsortError represents a structured error with code and details
type BibsortError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BibsortError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BibsortError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BibsortError) Is(target error) bool {
	var targetErr *BibsortError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BibsortError with the given code and message
func New(code ErrorCode, message string) *BibsortError {
	return &BibsortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BibsortError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BibsortError {
	return &BibsortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BibsortError
func Wrap(err error, code ErrorCode, message string) *BibsortError {
	if err == nil {
		return nil
	}
	return &BibsortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BibsortError {
	if err == nil {
		return nil
	}
	return &BibsortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BibsortError) WithDetail(key string, value interface{}) *BibsortError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var bibErr *BibsortError
	if errors.As(err, &bibErr) {
		return bibErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BibsortError
func GetErrorCode(err error) ErrorCode {
	var bibErr *BibsortError
	if errors.As(err, &bibErr) {
		return bibErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BibsortError
func GetErrorDetails(err error) map[string]interface{} {
	var bibErr *BibsortError
	if errors.As(err, &bibErr) {
		return bibErr.Details
	}
	return nil
}
