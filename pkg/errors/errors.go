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

	// Configuration errors - fatal, the operator must fix the selection
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrThemeNotFound ErrorCode = "THEME_NOT_FOUND"

	// Theme repository errors
	ErrThemeInvalid     ErrorCode = "THEME_INVALID"
	ErrDescriptorParse  ErrorCode = "DESCRIPTOR_PARSE"
	ErrRepositoryAccess ErrorCode = "REPOSITORY_ACCESS"

	// Resolution errors - DEP_MISSING is recoverable (warn and continue)
	ErrDepMissing ErrorCode = "DEP_MISSING"

	// Assembly and filesystem errors - fatal for the current
	// environment's pass
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrRewrite       ErrorCode = "REWRITE"
)

// SplashError represents a structured error with code and details
type SplashError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SplashError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SplashError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SplashError) Is(target error) bool {
	var targetErr *SplashError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SplashError with the given code and message
func New(code ErrorCode, message string) *SplashError {
	return &SplashError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SplashError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SplashError {
	return &SplashError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SplashError
func Wrap(err error, code ErrorCode, message string) *SplashError {
	if err == nil {
		return nil
	}
	return &SplashError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SplashError {
	if err == nil {
		return nil
	}
	return &SplashError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SplashError) WithDetail(key string, value interface{}) *SplashError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var splashErr *SplashError
	if errors.As(err, &splashErr) {
		return splashErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if
// not a SplashError
func GetErrorCode(err error) ErrorCode {
	var splashErr *SplashError
	if errors.As(err, &splashErr) {
		return splashErr.Code
	}
	return ErrUnknown
}
