package statekit

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSlice is returned when two slices register the same name.
	ErrDuplicateSlice = errors.New("duplicate slice name")

	// ErrEmptySliceName is returned when a slice has an empty name.
	ErrEmptySliceName = errors.New("empty slice name")

	// ErrNilSlice is returned when a nil slice is registered.
	ErrNilSlice = errors.New("nil slice")

	// ErrUnknownSlice is returned when preloaded state names a slice that is
	// not registered.
	ErrUnknownSlice = errors.New("unknown slice")

	// ErrUnknownEndpoint reports a query for an API endpoint that is not
	// registered. The API middleware logs it and drops the query.
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrDuplicateEndpoint is returned when two API endpoints share a name.
	ErrDuplicateEndpoint = errors.New("duplicate endpoint")

	// ErrInvalidEndpoint is returned when an API endpoint has no name or no fetcher.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)

// ErrorCategory classifies errors by how they should be handled.
type ErrorCategory string

const (
	// ErrorTransient indicates the error is temporary and the operation can be retried.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates the error is not recoverable through retry.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorConfig indicates invalid configuration detected at startup.
	ErrorConfig ErrorCategory = "config"
)

// CategorizedError is an error that provides information about how it should be handled.
type CategorizedError interface {
	error
	Category() ErrorCategory
	Retryable() bool
}

// Error is a categorized error.
type Error struct {
	Msg   string
	Cat   ErrorCategory
	Cause error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// Retryable returns true if the error is transient and can be retried.
func (e *Error) Retryable() bool {
	return e.Cat == ErrorTransient
}

// NewTransientError creates a transient error that can be retried.
func NewTransientError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Cause: cause}
}

// NewPermanentError creates a permanent error that should not be retried.
func NewPermanentError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorPermanent, Cause: cause}
}

// ConfigError reports an invalid store or slice configuration.
type ConfigError struct {
	Slice string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Slice == "" {
		return fmt.Sprintf("statekit: config: %v", e.Err)
	}
	return fmt.Sprintf("statekit: config: slice %q: %v", e.Slice, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Category returns ErrorConfig.
func (e *ConfigError) Category() ErrorCategory {
	return ErrorConfig
}

// Retryable always returns false.
func (e *ConfigError) Retryable() bool {
	return false
}

// IsTransient returns true if the error is categorized as transient.
// It checks if the error or any wrapped error implements CategorizedError.
func IsTransient(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorTransient
	}
	return false
}

// IsPermanent returns true if the error is categorized as permanent.
func IsPermanent(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorPermanent
	}
	return false
}

// IsConfig returns true if the error is a configuration error.
func IsConfig(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorConfig
	}
	return false
}
