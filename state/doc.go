// Package state provides the keyed persistence layer under the work
// package store.
//
// The Store interface is a small KV contract with optimistic concurrency:
// every entry carries a revision, and Update only succeeds against the
// revision the caller read. Lifecycle transitions are read-modify-write
// sequences on a single key, so two racing transitions on the same work
// package resolve to exactly one winner while distinct work packages never
// contend.
//
// Two backends ship: NATS JetStream KV for production (revisions map onto
// the bucket's compare-and-set) and an in-memory store for testing and
// single-process use.
//
//	// Production
//	conn, _ := nats.Connect(nats.DefaultURL)
//	store, _ := state.NewNATSStore(state.NATSStoreConfig{Conn: conn, Bucket: "work-packages"})
//
//	// Testing
//	store := state.NewMemoryStore()
package state
