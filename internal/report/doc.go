// Package report converts a parse result into a serializable Snapshot.
//
// A Snapshot is the stable, order-deterministic form of everything a parse
// produced: individuals and families (ordered by id), parse errors (in
// encounter order) and anomalies. It is what the CLI prints, what the store
// archives and what golden files compare against.
//
// # Canonical JSON
//
// MarshalCanonical produces RFC 8785 canonical JSON:
//   - object keys sorted by UTF-16 code units
//   - strings NFC normalized, with only quote, backslash and control
//     characters escaped
//   - no floats, no nulls
//
// Hash computes a content hash over the canonical form with domain
// separation, so two parses of equivalent input share a hash.
//
// # Schema
//
// Validate checks a JSON report against the #Report definition in the
// embedded schema.cue.
package report
