// Package catalog generates well-formed task instances by kind.
//
// The catalog is a registry mapping each concrete task kind to a builder.
// Requesting the random sentinel picks a concrete kind first, sampled from
// a set that excludes the sentinel by construction. Generation never
// persists anything; the lifecycle controller owns that.
package catalog
