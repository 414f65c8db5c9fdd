package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeRead    ErrorType = "READ"
	ErrTypeParse   ErrorType = "PARSE"
	ErrTypeColumn  ErrorType = "COLUMN"
	ErrTypeRender  ErrorType = "RENDER"
	ErrTypeStorage ErrorType = "STORAGE"
	ErrTypeConfig  ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewReadError creates an error for a missing, unreadable, malformed or empty input
func NewReadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRead, message, cause)
}

// NewParseError creates an error for a value that does not match its expected format.
// The row is zero-based over data rows.
func NewParseError(column string, row int, value string, cause error) *AppError {
	return NewAppError(ErrTypeParse, fmt.Sprintf("column %q row %d: cannot parse %q", column, row, value), cause).
		WithContext("column", column).
		WithContext("row", row).
		WithContext("value", value)
}

// NewColumnError creates an error for a column that is absent or has the wrong kind
func NewColumnError(column, message string) *AppError {
	return NewAppError(ErrTypeColumn, fmt.Sprintf("column %q: %s", column, message), nil).
		WithContext("column", column)
}

// NewRenderError creates a figure rendering error
func NewRenderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether any AppError in err's chain has the given type
func IsType(err error, errType ErrorType) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}
