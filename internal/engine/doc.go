// Package engine implements the storage.local mutation engine.
//
// Every public operation (Set, Get, Remove, Clear) is one synchronous
// load-modify-save sequence against a single extension's record, held behind
// the Store contract. The engine owns all observable semantics:
//
//   - key-specification expansion (string / array / object-with-defaults)
//   - quota enforcement during Set (total bytes, per-item bytes, item count)
//   - before/after change records for listener notification
//
// Atomicity: a quota failure at any point aborts the whole call. The working
// copy is discarded and nothing reaches the store, even though the copy was
// partially mutated in memory before the failing key.
//
// The engine performs no internal locking. Callers serialize access to a
// given extension's record; two unserialized concurrent mutations race
// last-writer-wins over the whole record.
//
// Record lifecycle asymmetry, preserved deliberately: Remove that empties
// the map still persists an empty object record, while Clear deletes the
// record outright.
package engine
