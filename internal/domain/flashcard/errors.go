package flashcard

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the failure categories a generation or theme operation
// can end in. Every code resolves to a well-defined state; none are fatal.
type ErrorCode string

const (
	ErrCodeValidation  ErrorCode = "VALIDATION_ERROR"
	ErrCodeTransport   ErrorCode = "TRANSPORT_ERROR"
	ErrCodeEmptyResult ErrorCode = "EMPTY_RESULT"
	ErrCodeThemeInput  ErrorCode = "THEME_INPUT_ERROR"
)

// User-facing messages surfaced through View.ErrorMessage.
const (
	MessageEmptyTopic   = "Please enter a topic or definition."
	MessageNoFlashcards = "No flashcards generated for this topic. Try rephrasing or a different subject."
	MessageUnexpected   = "An unexpected error occurred. Please try again."
)

// DomainError represents a typed error enriched with contextual data while
// remaining free from infrastructure dependencies.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches another DomainError with the same code. Messages are ignored so
// callers can compare against ErrThemeInput.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if !errors.As(target, &domainErr) {
		return false
	}
	return e.Code == domainErr.Code
}

// ErrThemeInput matches any rejected theme value via errors.Is.
var ErrThemeInput = &DomainError{Code: ErrCodeThemeInput}

// NewDomainError constructs a DomainError with the supplied code and message.
func NewDomainError(code ErrorCode, message string, cause error, context map[string]interface{}) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

