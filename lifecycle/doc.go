// Package lifecycle wires the task catalog, work package store,
// interaction validator, rate limiter, event bus and archive into the
// four operations clients use:
//
//	RequestTask       issue a task, creating a pending work package
//	AcknowledgeTask   bind the client's content id, advancing to acknowledged
//	ReportTaskFailure record a client failure, advancing to rejected
//	SubmitInteraction validate and record a contribution, advancing to completed
//
// The controller holds no lifecycle state of its own; every transition
// is applied through the store's guarded compare-and-swap, so multiple
// controllers over one backend behave as one.
package lifecycle
