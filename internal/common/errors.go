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

// Failure categories, one per stage that can fail. ErrConfig is the only one
// that terminates the process with a non-zero exit; everything else is logged
// and the invocation returns cleanly.
var (
	ErrConfig     = errors.New("invalid configuration")
	ErrFetch      = errors.New("document fetch failed")
	ErrCompletion = errors.New("completion request failed")
	ErrParse      = errors.New("response is not valid JSON")
	ErrSchema     = errors.New("response missing required fields")
	ErrResolution = errors.New("entity resolution failed")
	ErrDateParse  = errors.New("date parse failed")
	ErrPatch      = errors.New("document patch failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
