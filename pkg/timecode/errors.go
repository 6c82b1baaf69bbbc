package timecode

import (
	"errors"
	"fmt"
)

// ErrorType represents the kind of timecode error.
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeFormat        ErrorType = "FORMAT_ERROR"
	ErrorTypeValidation    ErrorType = "VALIDATION_ERROR"
	ErrorTypeRange         ErrorType = "RANGE_ERROR"
)

// Error is returned by every failing construction, formatting or arithmetic
// call in this package.
type Error struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

// NewError creates a new Error.
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// WrapError wraps an existing error.
func WrapError(err error, errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// NewConfigurationError creates an error for an unsupported frame rate or
// drop-frame combination.
func NewConfigurationError(format string, args ...interface{}) *Error {
	return NewError(ErrorTypeConfiguration, fmt.Sprintf(format, args...))
}

// NewFormatError creates an error for malformed text input or an unknown
// format token.
func NewFormatError(format string, args ...interface{}) *Error {
	return NewError(ErrorTypeFormat, fmt.Sprintf(format, args...))
}

// NewValidationError creates an error for out-of-range components.
func NewValidationError(format string, args ...interface{}) *Error {
	return NewError(ErrorTypeValidation, fmt.Sprintf(format, args...))
}

// NewRangeError creates an error for arithmetic underflow.
func NewRangeError(format string, args ...interface{}) *Error {
	return NewError(ErrorTypeRange, fmt.Sprintf(format, args...))
}

// GetError extracts an *Error from err's chain.
func GetError(err error) (*Error, bool) {
	var tcErr *Error
	if errors.As(err, &tcErr) {
		return tcErr, true
	}
	return nil, false
}

func isType(err error, errType ErrorType) bool {
	tcErr, ok := GetError(err)
	return ok && tcErr.Type == errType
}

// IsConfigurationError reports whether err is a configuration error.
func IsConfigurationError(err error) bool { return isType(err, ErrorTypeConfiguration) }

// IsFormatError reports whether err is a format error.
func IsFormatError(err error) bool { return isType(err, ErrorTypeFormat) }

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool { return isType(err, ErrorTypeValidation) }

// IsRangeError reports whether err is a range error.
func IsRangeError(err error) bool { return isType(err, ErrorTypeRange) }
