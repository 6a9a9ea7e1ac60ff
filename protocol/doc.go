// Package protocol defines the task and interaction unions exchanged with
// annotation clients.
//
// Task is a closed tagged union over TaskKind; each variant carries exactly
// the fields its kind requires and is immutable once generated. Interaction
// is the matching union of client responses (text reply, rating, ranking),
// discriminated by an explicit kind field on the wire.
//
// Envelope is the stored form of a task payload: kind plus raw variant
// data. Unknown kinds survive a store/load cycle as OpaqueTask, so this
// package never forces a schema migration on read paths that do not
// interpret the payload.
package protocol
