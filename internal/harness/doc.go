// Package harness runs GEDCOM conformance scenarios.
//
// A scenario names one input, either inline or as a file, and states what
// the parse must produce. The harness parses the input, runs anomaly
// detection, archives the snapshot in a fresh in-memory store and checks
// the archived copy, so every scenario also exercises the archive.
//
// # Scenario Format
//
//	name: married_twice
//	description: "A man married in two families is flagged"
//	input: |
//	  0 @I1@ INDI
//	  1 SEX M
//	  ...
//	expect:
//	  individuals: 2
//	  families: 2
//	  errors: 1
//	  error_codes: [DATE_PARSE_FAILURE]
//	  anomalies: [I1]
//	assertions:
//	  - type: individual
//	    id: I1
//	    fields: { sex: M, spouse_of: [F1, F2] }
//	  - type: error
//	    line: 21
//	    code: DATE_PARSE_FAILURE
//
// Use file: instead of input: to read a GEDCOM file; relative paths are
// resolved against the scenario's directory.
//
// # Assertion Types
//
//   - individual: the individual exists and its fields match (subset)
//   - family: the family exists and its fields match (subset)
//   - error: an error with the code was recorded on the line
//   - absent: no individual or family has the id
//
// # Golden Files
//
// RunWithGolden compares the canonical JSON of the archived snapshot with
// testdata/golden/<name>.golden. Inline scenarios use the source name
// "inline" and file scenarios the file's base name, so golden files do not
// depend on where the repository is checked out.
package harness
