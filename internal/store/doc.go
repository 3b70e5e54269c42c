// Package store provides SQLite-backed archiving of parse runs.
//
// Each run records one parse of one source:
//   - runs: id (UUIDv7), logical seq, source, report hash and counts
//   - individuals, families: the parsed records, keyed by (run_id, id)
//   - parse_errors, anomalies: in encounter order, keyed by (run_id, seq)
//
// Id lists (child_of, spouse_of, children, anomaly families) are stored as
// canonical JSON arrays.
//
// # Ordering
//
// Runs are ordered by seq, a logical counter assigned at write time, never by
// wall-clock time. Records within a run are read back ordered by id
// (COLLATE BINARY) or seq, so ReadSnapshot returns exactly what was written.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
