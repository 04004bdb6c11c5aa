// Package store provides the SQLite-backed record store for extension data.
//
// The schema is a single table: one row per extension id, holding that
// extension's entire storage area as one UTF-8 JSON object string. The store
// knows nothing about keys, quotas, or change records - those live in the
// engine; this package only loads, saves, and deletes whole records.
//
// A stored record that fails to parse as a JSON object is reported as
// absent, not as an error. Corrupt data degrading to empty is a deliberate
// behavior of the storage area and callers depend on it.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// The connection pool is capped at a single connection; SQLite allows one
// writer at a time and each engine operation is a load-modify-save sequence
// that assumes the caller serializes access per extension record.
package store
