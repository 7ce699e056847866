package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a configuration parsing failure.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransportError describes a failed call to the remote generation service.
// Detail holds the structured error text extracted from the response body, if
// any; Status holds the HTTP status line text.
type TransportError struct {
	StatusCode int
	Status     string
	Detail     string
	Err        error
}

// NewTransportError constructs a TransportError for a non-success response.
func NewTransportError(statusCode int, status, detail string) error {
	return &TransportError{StatusCode: statusCode, Status: status, Detail: detail}
}

// WrapTransportError wraps a connection-level failure where no response was received.
func WrapTransportError(err error) error {
	return &TransportError{Err: err}
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Detail != "" && e.StatusCode != 0:
		return fmt.Sprintf("transport error: %d: %s", e.StatusCode, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("transport error: %s", e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("transport error: %d %s", e.StatusCode, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("transport error: %v", e.Err)
	default:
		return "transport error"
	}
}

// UserMessage returns the most specific human-readable description available:
// the structured detail, else the status text, else an empty string.
func (e *TransportError) UserMessage() string {
	if e == nil {
		return ""
	}
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		return detail
	}
	if e.StatusCode != 0 {
		status := strings.TrimSpace(e.Status)
		if status == "" {
			return fmt.Sprintf("API Error: %d", e.StatusCode)
		}
		return fmt.Sprintf("API Error: %d %s", e.StatusCode, status)
	}
	return ""
}

// Unwrap exposes the underlying error.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StorageError indicates a durable key-value read or write failure.
type StorageError struct {
	Op  string
	Key string
	Err error
}

// NewStorageError constructs a StorageError for the given operation and key.
func NewStorageError(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("storage error [%s %s]: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error [%s]: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *StorageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
