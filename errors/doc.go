// Package errors provides the typed error taxonomy for the task lifecycle.
//
// Every failure the lifecycle can produce is a *Error carrying an ErrorCode
// and an ErrorCategory. Codes identify the exact condition (NOT_FOUND,
// ALREADY_BOUND, KIND_MISMATCH, ...); categories decide retry semantics:
// client errors must never be retried unchanged, infrastructure and resource
// errors may be. None of these errors are fatal to the process.
//
// # Usage
//
//	if err := ctrl.AcknowledgeTask(ctx, id, contentID); err != nil {
//	    switch errors.Code(err) {
//	    case errors.ErrCodeAlreadyBound:
//	        // retry of our own ack, or wrong id; caller distinguishes
//	    case errors.ErrCodeNotFound:
//	        // unknown work package
//	    }
//	}
//
// Errors marshal to JSON so the request-handling layer can surface code,
// category and retryability on the wire without re-deriving them.
package errors
