package errors

// ErrorCategory classifies errors by their nature and retry semantics.
type ErrorCategory string

// Error categories define how errors should be handled by callers.
const (
	// CategoryClient indicates the request itself was wrong and must not be
	// retried unchanged. Examples: unknown task kind, mismatched interaction.
	CategoryClient ErrorCategory = "client"

	// CategoryResource indicates resource exhaustion. The request was fine
	// but the system refused it for now. Example: issuance rate limit hit.
	CategoryResource ErrorCategory = "resource"

	// CategoryInfrastructure indicates a backing-service failure where retry
	// may succeed. Example: the work package store is unreachable.
	CategoryInfrastructure ErrorCategory = "infrastructure"

	// CategoryInternal indicates a bug or invariant violation.
	CategoryInternal ErrorCategory = "internal"
)

// String returns the string representation of the category.
func (c ErrorCategory) String() string {
	return string(c)
}

// IsRetryable returns true if errors in this category may succeed on retry.
func (c ErrorCategory) IsRetryable() bool {
	switch c {
	case CategoryInfrastructure, CategoryResource:
		return true
	default:
		return false
	}
}

// ErrorCode identifies specific failure types in the task lifecycle.
type ErrorCode string

// Error codes. Client codes correspond one-to-one with the conditions a
// frontend can trigger; the request-handling layer maps each to a status.
const (
	// Client errors
	ErrCodeUnsupportedTaskKind ErrorCode = "UNSUPPORTED_TASK_KIND" // requested kind not in catalog
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"             // no work package with that id / content id
	ErrCodeAlreadyBound        ErrorCode = "ALREADY_BOUND"         // content id was already bound
	ErrCodeExpired             ErrorCode = "EXPIRED"               // work package past its expiry
	ErrCodeAlreadyResolved     ErrorCode = "ALREADY_RESOLVED"      // work package reached a terminal state
	ErrCodeInvalidTransition   ErrorCode = "INVALID_TRANSITION"    // operation not allowed in current state
	ErrCodeKindMismatch        ErrorCode = "KIND_MISMATCH"         // interaction kind does not fit task kind
	ErrCodeOutOfRange          ErrorCode = "OUT_OF_RANGE"          // rating outside the declared scale
	ErrCodeInvalidPermutation  ErrorCode = "INVALID_PERMUTATION"   // ranking is not a permutation of candidates
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"         // malformed request data

	// Resource errors
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED" // issuance budget exhausted for client

	// Infrastructure errors
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE" // backing store failed or unreachable

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL" // unexpected internal error
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

// DefaultCategory returns the category an error code belongs to.
func (c ErrorCode) DefaultCategory() ErrorCategory {
	switch c {
	case ErrCodeUnsupportedTaskKind, ErrCodeNotFound, ErrCodeAlreadyBound,
		ErrCodeExpired, ErrCodeAlreadyResolved, ErrCodeInvalidTransition,
		ErrCodeKindMismatch, ErrCodeOutOfRange, ErrCodeInvalidPermutation,
		ErrCodeInvalidInput:
		return CategoryClient

	case ErrCodeRateLimited:
		return CategoryResource

	case ErrCodeStoreUnavailable:
		return CategoryInfrastructure

	default:
		return CategoryInternal
	}
}

// DefaultRetryable returns whether this error code is typically retryable.
func (c ErrorCode) DefaultRetryable() bool {
	return c.DefaultCategory().IsRetryable()
}

// codeDescriptions provides human-readable descriptions for error codes.
var codeDescriptions = map[ErrorCode]string{
	ErrCodeUnsupportedTaskKind: "unsupported task kind",
	ErrCodeNotFound:            "work package not found",
	ErrCodeAlreadyBound:        "content id already bound",
	ErrCodeExpired:             "work package expired",
	ErrCodeAlreadyResolved:     "work package already resolved",
	ErrCodeInvalidTransition:   "invalid lifecycle transition",
	ErrCodeKindMismatch:        "interaction kind does not match task kind",
	ErrCodeOutOfRange:          "rating outside declared scale",
	ErrCodeInvalidPermutation:  "ranking is not a valid permutation",
	ErrCodeInvalidInput:        "invalid input provided",
	ErrCodeRateLimited:         "issuance rate limit exceeded",
	ErrCodeStoreUnavailable:    "work package store unavailable",
	ErrCodeInternal:            "internal error",
}

// Description returns a human-readable description for the error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}
