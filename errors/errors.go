package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// LifecycleError is the interface for all structured errors in annokit.
// It extends the standard error interface with the context the external
// request-handling layer needs to map a failure to a user-visible status.
type LifecycleError interface {
	error

	// Code returns the specific error code identifying the failure type.
	Code() ErrorCode

	// Category returns the error category for retry/handling decisions.
	Category() ErrorCategory

	// Retryable returns true if the operation may succeed on retry.
	Retryable() bool

	// Unwrap returns the underlying error, if any.
	Unwrap() error
}

// Error is the concrete implementation of LifecycleError.
type Error struct {
	code          ErrorCode
	category      ErrorCategory
	message       string
	cause         error
	retryable     *bool // nil means use default based on category
	timestamp     time.Time
	workPackageID string // related work package, if applicable
	contentID     string // related bound content id, if applicable
}

// Ensure Error implements LifecycleError and json.Marshaler.
var (
	_ LifecycleError = (*Error)(nil)
	_ json.Marshaler = (*Error)(nil)
)

// Error returns the error message.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.category
}

// Retryable returns whether this error is retryable.
func (e *Error) Retryable() bool {
	if e.retryable != nil {
		return *e.retryable
	}
	return e.category.IsRetryable()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Timestamp returns when the error occurred.
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// WorkPackageID returns the related work package id, if set.
func (e *Error) WorkPackageID() string {
	return e.workPackageID
}

// ContentID returns the related content id, if set.
func (e *Error) ContentID() string {
	return e.contentID
}

// errorJSON is the JSON representation of an Error.
type errorJSON struct {
	Code          ErrorCode     `json:"code"`
	Category      ErrorCategory `json:"category"`
	Message       string        `json:"message"`
	Cause         string        `json:"cause,omitempty"`
	Retryable     bool          `json:"retryable"`
	Timestamp     string        `json:"timestamp,omitempty"`
	WorkPackageID string        `json:"work_package_id,omitempty"`
	ContentID     string        `json:"content_id,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	j := errorJSON{
		Code:          e.code,
		Category:      e.category,
		Message:       e.message,
		Retryable:     e.Retryable(),
		WorkPackageID: e.workPackageID,
		ContentID:     e.contentID,
	}
	if e.cause != nil {
		j.Cause = e.cause.Error()
	}
	if !e.timestamp.IsZero() {
		j.Timestamp = e.timestamp.Format(time.RFC3339Nano)
	}
	return json.Marshal(j)
}

// Option is a functional option for configuring an Error.
type Option func(*Error)

// WithCategory overrides the default category.
func WithCategory(cat ErrorCategory) Option {
	return func(e *Error) {
		e.category = cat
	}
}

// WithRetryable explicitly sets whether the error is retryable.
func WithRetryable(retryable bool) Option {
	return func(e *Error) {
		e.retryable = &retryable
	}
}

// WithWorkPackageID sets the related work package id.
func WithWorkPackageID(id string) Option {
	return func(e *Error) {
		e.workPackageID = id
	}
}

// WithContentID sets the related content id.
func WithContentID(id string) Option {
	return func(e *Error) {
		e.contentID = id
	}
}

// WithCause sets the underlying cause.
func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
	}
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string, opts ...Option) *Error {
	e := &Error{
		code:      code,
		category:  code.DefaultCategory(),
		message:   message,
		timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Newf creates a new Error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// FromCode creates an error with the default description for the code.
func FromCode(code ErrorCode, opts ...Option) *Error {
	return New(code, code.Description(), opts...)
}

// UnsupportedTaskKind creates an error for an unrecognized task kind.
func UnsupportedTaskKind(kind string) *Error {
	return Newf(ErrCodeUnsupportedTaskKind, "unsupported task kind %q", kind)
}

// NotFound creates a not found error.
func NotFound(message string, opts ...Option) *Error {
	return New(ErrCodeNotFound, message, opts...)
}

// AlreadyBound creates an error for a second content-id binding attempt.
func AlreadyBound(workPackageID string, opts ...Option) *Error {
	opts = append([]Option{WithWorkPackageID(workPackageID)}, opts...)
	return New(ErrCodeAlreadyBound, fmt.Sprintf("work package %s already has a bound content id", workPackageID), opts...)
}

// Expired creates an error for an operation on an expired work package.
func Expired(workPackageID string, opts ...Option) *Error {
	opts = append([]Option{WithWorkPackageID(workPackageID)}, opts...)
	return New(ErrCodeExpired, fmt.Sprintf("work package %s has expired", workPackageID), opts...)
}

// AlreadyResolved creates an error for a transition out of a terminal state.
func AlreadyResolved(workPackageID string, opts ...Option) *Error {
	opts = append([]Option{WithWorkPackageID(workPackageID)}, opts...)
	return New(ErrCodeAlreadyResolved, fmt.Sprintf("work package %s is already resolved", workPackageID), opts...)
}

// InvalidTransition creates an error for a disallowed lifecycle transition.
func InvalidTransition(workPackageID, detail string, opts ...Option) *Error {
	opts = append([]Option{WithWorkPackageID(workPackageID)}, opts...)
	return New(ErrCodeInvalidTransition, detail, opts...)
}

// KindMismatch creates an error for an interaction that does not fit the task.
func KindMismatch(message string, opts ...Option) *Error {
	return New(ErrCodeKindMismatch, message, opts...)
}

// OutOfRange creates an error for a rating outside the declared scale.
func OutOfRange(message string, opts ...Option) *Error {
	return New(ErrCodeOutOfRange, message, opts...)
}

// InvalidPermutation creates an error for a malformed ranking.
func InvalidPermutation(message string, opts ...Option) *Error {
	return New(ErrCodeInvalidPermutation, message, opts...)
}

// InvalidInput creates an invalid input error.
func InvalidInput(message string, opts ...Option) *Error {
	return New(ErrCodeInvalidInput, message, opts...)
}

// RateLimited creates a rate limit error.
func RateLimited(clientID string, opts ...Option) *Error {
	return New(ErrCodeRateLimited, fmt.Sprintf("issuance rate limit exceeded for client %s", clientID), opts...)
}

// StoreUnavailable creates an infrastructure error wrapping a store failure.
func StoreUnavailable(cause error, opts ...Option) *Error {
	opts = append([]Option{WithCause(cause)}, opts...)
	return New(ErrCodeStoreUnavailable, "work package store unavailable", opts...)
}

// Internal creates an internal error.
func Internal(message string, opts ...Option) *Error {
	return New(ErrCodeInternal, message, opts...)
}
