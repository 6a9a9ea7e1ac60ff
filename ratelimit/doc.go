// Package ratelimit provides local token-bucket limiting for task
// issuance.
//
// Buckets are keyed by issuing client id and refill continuously over a
// configured window. Keys without a configured capacity are unlimited, so
// limiting is strictly opt-in.
package ratelimit
