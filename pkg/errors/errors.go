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

	// Configuration errors: invalid or missing required paths, source equal to destination
	ErrConfig      ErrorCode = "CONFIG"
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Rendering collaborator failures
	ErrProcessing ErrorCode = "PROCESSING"

	// Filesystem errors
	ErrIO               ErrorCode = "IO"
	ErrUnsupportedEntry ErrorCode = "UNSUPPORTED_ENTRY"
)

// TemplatingError represents a structured error with code and details
type TemplatingError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TemplatingError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TemplatingError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TemplatingError) Is(target error) bool {
	var targetErr *TemplatingError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TemplatingError with the given code and message
func New(code ErrorCode, message string) *TemplatingError {
	return &TemplatingError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TemplatingError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TemplatingError {
	return &TemplatingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TemplatingError
func Wrap(err error, code ErrorCode, message string) *TemplatingError {
	if err == nil {
		return nil
	}
	return &TemplatingError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TemplatingError {
	if err == nil {
		return nil
	}
	return &TemplatingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TemplatingError) WithDetail(key string, value interface{}) *TemplatingError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithPath records the offending path, the detail every filesystem failure carries
func (e *TemplatingError) WithPath(path string) *TemplatingError {
	return e.WithDetail("path", path)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tErr *TemplatingError
	if errors.As(err, &tErr) {
		return tErr.Code == code
	}
	return false
}

// IsIO reports whether err is an I/O failure. Unsupported tree entries are
// reported as a specialised I/O failure.
func IsIO(err error) bool {
	return IsErrorCode(err, ErrIO) || IsErrorCode(err, ErrUnsupportedEntry)
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TemplatingError
func GetErrorCode(err error) ErrorCode {
	var tErr *TemplatingError
	if errors.As(err, &tErr) {
		return tErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TemplatingError
func GetErrorDetails(err error) map[string]interface{} {
	var tErr *TemplatingError
	if errors.As(err, &tErr) {
		return tErr.Details
	}
	return nil
}

// Path returns the "path" detail of err, or "" when there is none
func Path(err error) string {
	if p, ok := GetErrorDetails(err)["path"].(string); ok {
		return p
	}
	return ""
}
