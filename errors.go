package timeoutpolicy

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents a timeout policy error code.
type ErrorCode string

const (
	ErrTimeout         ErrorCode = "TIMEOUT"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrMissingArgument ErrorCode = "MISSING_ARGUMENT"
)

// PolicyError is the base error type for all timeout policy errors.
type PolicyError struct {
	Code    ErrorCode
	Policy  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PolicyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (cause: %v)", e.Code, e.Policy, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Policy, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *PolicyError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *PolicyError) Is(target error) bool {
	if t, ok := target.(*PolicyError); ok {
		return e.Code == t.Code
	}
	return false
}

// ConfigurationError reports an invalid or missing construction argument.
// It is raised only at construction, never at Execute.
type ConfigurationError struct {
	PolicyError
	Field string
}

// NewInvalidArgumentError creates a configuration error for an invalid value.
func NewInvalidArgumentError(field, message string) *ConfigurationError {
	return &ConfigurationError{
		PolicyError: PolicyError{
			Code:    ErrInvalidArgument,
			Message: fmt.Sprintf("%s %s", field, message),
		},
		Field: field,
	}
}

// NewMissingArgumentError creates a configuration error for an absent
// required argument.
func NewMissingArgumentError(field string) *ConfigurationError {
	return &ConfigurationError{
		PolicyError: PolicyError{
			Code:    ErrMissingArgument,
			Message: fmt.Sprintf("%s is required", field),
		},
		Field: field,
	}
}

// TimeoutRejectedError is returned when the deadline elapses before the
// guarded operation finishes. For the pessimistic strategy Abandoned holds
// the handle to the still-running work; it is nil for the optimistic
// strategy.
type TimeoutRejectedError struct {
	PolicyError
	Timeout   time.Duration
	Abandoned *AbandonedOperation
}

// NewTimeoutRejectedError creates a new timeout rejection.
func NewTimeoutRejectedError(policy string, timeout time.Duration, abandoned *AbandonedOperation) *TimeoutRejectedError {
	return &TimeoutRejectedError{
		PolicyError: PolicyError{
			Code:    ErrTimeout,
			Policy:  policy,
			Message: fmt.Sprintf("operation did not complete within %s", timeout),
		},
		Timeout:   timeout,
		Abandoned: abandoned,
	}
}

// IsTimeoutRejected reports whether err is a timeout rejection.
func IsTimeoutRejected(err error) bool {
	var rejected *TimeoutRejectedError
	return errors.As(err, &rejected)
}

// PanicError wraps a panic recovered from a guarded operation so that an
// abandoned goroutine can never crash the process.
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v", e.Value)
}
