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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestParse    ErrorCode = "MANIFEST_PARSE"

	// Package lifecycle errors
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"
	ErrPackageInstall  ErrorCode = "PACKAGE_INSTALL"
	ErrPackageRemove   ErrorCode = "PACKAGE_REMOVE"

	// Stage errors
	ErrStageNotFound ErrorCode = "STAGE_NOT_FOUND"
	ErrStageInit     ErrorCode = "STAGE_INIT"
	ErrStageProcess  ErrorCode = "STAGE_PROCESS"
	ErrToolMissing   ErrorCode = "TOOL_MISSING"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileRemove   ErrorCode = "FILE_REMOVE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// CompinstError represents a structured error with code and details
type CompinstError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CompinstError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CompinstError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CompinstError) Is(target error) bool {
	var targetErr *CompinstError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CompinstError with the given code and message
func New(code ErrorCode, message string) *CompinstError {
	return &CompinstError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CompinstError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CompinstError {
	return &CompinstError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CompinstError
func Wrap(err error, code ErrorCode, message string) *CompinstError {
	if err == nil {
		return nil
	}
	return &CompinstError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CompinstError {
	if err == nil {
		return nil
	}
	return &CompinstError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CompinstError) WithDetail(key string, value interface{}) *CompinstError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var compErr *CompinstError
	if errors.As(err, &compErr) {
		return compErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CompinstError
func GetErrorCode(err error) ErrorCode {
	var compErr *CompinstError
	if errors.As(err, &compErr) {
		return compErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CompinstError
func GetErrorDetails(err error) map[string]interface{} {
	var compErr *CompinstError
	if errors.As(err, &compErr) {
		return compErr.Details
	}
	return nil
}
