// Package workpackage persists issued tasks and owns their lifecycle
// state.
//
// A WorkPackage binds a generated task payload to the requesting identity
// and the issuing client, with creation and optional expiry timestamps.
// Resolution moves forward only:
//
//	pending → acknowledged → completed
//	pending/acknowledged → rejected
//
// Completed and rejected are terminal. Acknowledgment binds a client
// content id exactly once; a secondary index makes content-id lookup the
// cheap path for every interaction. All transitions are atomic per id via
// the state store's revision check.
package workpackage
