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

	// Safety refusals. These are policy decisions, not failures of the
	// filesystem, and always surface before anything is mutated.
	ErrConflict         ErrorCode = "CONFLICT"
	ErrSourceMissing    ErrorCode = "SOURCE_MISSING"
	ErrTargetNotSymlink ErrorCode = "TARGET_NOT_SYMLINK"
	ErrSymlinkMigration ErrorCode = "SYMLINK_MIGRATION"
	ErrKindMismatch     ErrorCode = "KIND_MISMATCH"

	// Manifest errors
	ErrEntryNotFound    ErrorCode = "ENTRY_NOT_FOUND"
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestInvalid  ErrorCode = "MANIFEST_INVALID"
	ErrManifestWrite    ErrorCode = "MANIFEST_WRITE"

	// Execution errors
	ErrStepInvalid ErrorCode = "STEP_INVALID"
	ErrStepExecute ErrorCode = "STEP_EXECUTE"
	ErrAuditWrite  ErrorCode = "AUDIT_WRITE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"
)

// LinkanyError represents a structured error with code and details
type LinkanyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LinkanyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LinkanyError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LinkanyError) Is(target error) bool {
	var targetErr *LinkanyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LinkanyError with the given code and message
func New(code ErrorCode, message string) *LinkanyError {
	return &LinkanyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LinkanyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LinkanyError {
	return &LinkanyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LinkanyError
func Wrap(err error, code ErrorCode, message string) *LinkanyError {
	if err == nil {
		return nil
	}
	return &LinkanyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LinkanyError {
	if err == nil {
		return nil
	}
	return &LinkanyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LinkanyError) WithDetail(key string, value interface{}) *LinkanyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var linkanyErr *LinkanyError
	if errors.As(err, &linkanyErr) {
		return linkanyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LinkanyError
func GetErrorCode(err error) ErrorCode {
	var linkanyErr *LinkanyError
	if errors.As(err, &linkanyErr) {
		return linkanyErr.Code
	}
	return ErrUnknown
}

// DetailString returns a string detail attached to err, or ""
func DetailString(err error, key string) string {
	var linkanyErr *LinkanyError
	if errors.As(err, &linkanyErr) {
		if v, ok := linkanyErr.Details[key].(string); ok {
			return v
		}
	}
	return ""
}

// Describe returns the human message of an error without its code prefix.
// Results carry these strings so consumers can match on wording.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var linkanyErr *LinkanyError
	if errors.As(err, &linkanyErr) {
		if linkanyErr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", linkanyErr.Message, linkanyErr.Wrapped)
		}
		return linkanyErr.Message
	}
	return err.Error()
}
