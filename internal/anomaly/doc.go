// Package anomaly detects semantic irregularities in a parsed model.Tree.
//
// Anomalies differ from parse errors: the input was structurally valid and
// every mutation was accepted, but the resulting records are odd at the
// domain level. Detection is a read-only pass that must run after parsing
// has finished. It never mutates the tree and may be repeated.
//
// # Checks
//
//   - MULTIPLE_MARRIAGES: an individual is the husband or wife of more than
//     one family that has a marriage date
package anomaly
