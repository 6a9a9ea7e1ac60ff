// Package bus carries lifecycle events to downstream consumers.
//
// The lifecycle controller publishes one event per successful transition
// (issued, acknowledged, rejected, completed) as JSON. Publication is
// best-effort: a failed publish is logged and never fails the operation
// that triggered it.
//
// Two backends ship: NATS for production and an in-memory bus for tests
// and single-process use.
package bus
