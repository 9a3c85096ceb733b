package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrParse        = errors.New("parse error")
	ErrNoInput      = errors.New("no input available")
)

// Error codes
const (
	CodeParse    = "PARSE_ERROR"
	CodeInput    = "INPUT_ERROR"
	CodeConfig   = "CONFIG_ERROR"
	CodeExport   = "EXPORT_ERROR"
	CodeInternal = "INTERNAL_ERROR"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewParseError wraps a decoder failure so callers can match ErrParse.
func NewParseError(message string, cause error) *AppError {
	return NewAppError(CodeParse, message, fmt.Errorf("%w: %v", ErrParse, cause))
}

// NewInternalError reports a failure that no input should be able to cause,
// such as a recovered panic.
func NewInternalError(message string, cause any) *AppError {
	return NewAppError(CodeInternal, message, fmt.Errorf("%w: %v", ErrInternal, cause))
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNoInput reports whether err means an input document was not available.
func IsNoInput(err error) bool {
	return errors.Is(err, ErrNoInput)
}
