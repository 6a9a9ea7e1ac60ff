package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context while preserving the error chain.
// If err is nil, Wrap returns nil.
// If err is already a *Error, its code and category carry over.
// Otherwise, the result is an Internal error wrapping the original.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}

	var le *Error
	if errors.As(err, &le) {
		wrapped := &Error{
			code:          le.code,
			category:      le.category,
			message:       message,
			cause:         err,
			retryable:     le.retryable,
			workPackageID: le.workPackageID,
			contentID:     le.contentID,
		}
		for _, opt := range opts {
			opt(wrapped)
		}
		return wrapped
	}

	return New(ErrCodeInternal, message, append(opts, WithCause(err))...)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific error code.
func WrapWithCode(err error, code ErrorCode, message string, opts ...Option) *Error {
	if err == nil {
		return nil
	}
	opts = append(opts, WithCause(err))
	return New(code, message, opts...)
}

// Is checks if any error in the chain has the given error code.
func Is(err error, code ErrorCode) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.code == code
	}
	return false
}

// IsCategory checks if any error in the chain has the given category.
func IsCategory(err error, category ErrorCategory) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.category == category
	}
	return false
}

// IsRetryable checks if the error is retryable.
// Non-annokit errors are treated as not retryable.
func IsRetryable(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Retryable()
	}
	return false
}

// IsClient checks if the error is a client-input error.
func IsClient(err error) bool {
	return IsCategory(err, CategoryClient)
}

// IsInfrastructure checks if the error is an infrastructure failure.
func IsInfrastructure(err error) bool {
	return IsCategory(err, CategoryInfrastructure)
}

// Code extracts the error code from an error, if available.
// Returns empty string if err is not a *Error.
func Code(err error) ErrorCode {
	var le *Error
	if errors.As(err, &le) {
		return le.code
	}
	return ""
}

// Category extracts the error category from an error, if available.
// Returns empty string if err is not a *Error.
func Category(err error) ErrorCategory {
	var le *Error
	if errors.As(err, &le) {
		return le.category
	}
	return ""
}

// Cause returns the root cause of the error chain.
func Cause(err error) error {
	for {
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		inner := unwrapper.Unwrap()
		if inner == nil {
			return err
		}
		err = inner
	}
}
