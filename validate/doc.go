// Package validate checks client interactions against the task payloads
// they resolve to.
//
// The rules are a fixed allow-list: text replies fit conversational tasks,
// ratings fit rate-summary tasks within the declared scale, rankings fit
// ranking tasks as an exact permutation of the offered candidate indices.
// Adding a task kind means extending this package and the catalog; the
// lifecycle state machine stays untouched.
package validate
