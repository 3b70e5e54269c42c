package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/gedcheck/internal/report"
)

// AssertionError is returned when an assertion fails.
// It includes enough context to debug the failure without re-running.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// individualFields maps assertable field names to accessors.
var individualFields = map[string]func(report.IndividualRecord) any{
	"name":      func(r report.IndividualRecord) any { return r.Name },
	"sex":       func(r report.IndividualRecord) any { return r.Sex },
	"birth":     func(r report.IndividualRecord) any { return r.Birth },
	"death":     func(r report.IndividualRecord) any { return r.Death },
	"child_of":  func(r report.IndividualRecord) any { return r.ChildOf },
	"spouse_of": func(r report.IndividualRecord) any { return r.SpouseOf },
}

// familyFields maps assertable field names to accessors.
var familyFields = map[string]func(report.FamilyRecord) any{
	"husband":  func(r report.FamilyRecord) any { return r.Husband },
	"wife":     func(r report.FamilyRecord) any { return r.Wife },
	"children": func(r report.FamilyRecord) any { return r.Children },
	"married":  func(r report.FamilyRecord) any { return r.Married },
	"divorced": func(r report.FamilyRecord) any { return r.Divorced },
}

// normalizeValue converts a YAML value to a string or []string.
func normalizeValue(v any) (any, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list element %d: expected string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("expected string or list of strings, got %T", v)
	}
}

// matchValue compares an actual field value with a normalized expectation.
// A nil list matches an empty expectation.
func matchValue(actual, expected any) bool {
	switch want := expected.(type) {
	case string:
		got, ok := actual.(string)
		return ok && got == want
	case []string:
		got, ok := actual.([]string)
		return ok && slices.Equal(got, want)
	default:
		return false
	}
}

func formatValue(v any) string {
	if list, ok := v.([]string); ok {
		return "[" + strings.Join(list, ", ") + "]"
	}
	return fmt.Sprintf("%q", v)
}

// assertFields checks every expected field against the record (subset
// semantics) and reports the first mismatch in field name order.
func assertFields[R any](kind, id string, record R, accessors map[string]func(R) any, fields map[string]any) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		accessor, ok := accessors[name]
		if !ok {
			return fmt.Errorf("unknown %s field %q", kind, name)
		}
		want, err := normalizeValue(fields[name])
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		got := accessor(record)
		if !matchValue(got, want) {
			return &AssertionError{
				Type:     kind,
				Expected: fmt.Sprintf("%s %s %s = %s", kind, id, name, formatValue(want)),
				Actual:   formatValue(got),
			}
		}
	}
	return nil
}

// assertIndividual checks that the individual exists and matches the fields.
func assertIndividual(snap report.Snapshot, a Assertion) error {
	for _, r := range snap.Individuals {
		if r.ID == a.ID {
			return assertFields(AssertIndividual, a.ID, r, individualFields, a.Fields)
		}
	}
	return &AssertionError{
		Type:     AssertIndividual,
		Expected: fmt.Sprintf("individual %s", a.ID),
		Actual:   "not found",
	}
}

// assertFamily checks that the family exists and matches the fields.
func assertFamily(snap report.Snapshot, a Assertion) error {
	for _, r := range snap.Families {
		if r.ID == a.ID {
			return assertFields(AssertFamily, a.ID, r, familyFields, a.Fields)
		}
	}
	return &AssertionError{
		Type:     AssertFamily,
		Expected: fmt.Sprintf("family %s", a.ID),
		Actual:   "not found",
	}
}

// assertError checks that an error with the given code was recorded on the line.
func assertError(snap report.Snapshot, a Assertion) error {
	var onLine []string
	for _, e := range snap.Errors {
		if e.Line != a.Line {
			continue
		}
		if e.Code == a.Code {
			return nil
		}
		onLine = append(onLine, e.Code)
	}
	actual := "no error on that line"
	if len(onLine) > 0 {
		actual = strings.Join(onLine, ", ")
	}
	return &AssertionError{
		Type:     AssertError,
		Expected: fmt.Sprintf("%s on line %d", a.Code, a.Line),
		Actual:   actual,
	}
}

// assertAbsent checks that no record uses the id.
func assertAbsent(snap report.Snapshot, a Assertion) error {
	for _, r := range snap.Individuals {
		if r.ID == a.ID {
			return &AssertionError{Type: AssertAbsent, Expected: fmt.Sprintf("no record %s", a.ID), Actual: "individual " + a.ID}
		}
	}
	for _, r := range snap.Families {
		if r.ID == a.ID {
			return &AssertionError{Type: AssertAbsent, Expected: fmt.Sprintf("no record %s", a.ID), Actual: "family " + a.ID}
		}
	}
	return nil
}

// evaluateAssertion dispatches on the assertion type.
func evaluateAssertion(snap report.Snapshot, a Assertion) error {
	switch a.Type {
	case AssertIndividual:
		return assertIndividual(snap, a)
	case AssertFamily:
		return assertFamily(snap, a)
	case AssertError:
		return assertError(snap, a)
	case AssertAbsent:
		return assertAbsent(snap, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// checkExpectation compares whole-result expectations with the snapshot.
// Returns one message per mismatch.
func checkExpectation(snap report.Snapshot, want Expectation) []string {
	var failures []string
	count := func(what string, want *int, got int) {
		if want != nil && *want != got {
			failures = append(failures, fmt.Sprintf("expected %d %s, got %d", *want, what, got))
		}
	}
	count("individuals", want.Individuals, len(snap.Individuals))
	count("families", want.Families, len(snap.Families))
	count("errors", want.Errors, len(snap.Errors))

	if want.ErrorCodes != nil {
		got := make([]string, len(snap.Errors))
		for i, e := range snap.Errors {
			got[i] = e.Code
		}
		if !slices.Equal(got, want.ErrorCodes) {
			failures = append(failures, fmt.Sprintf("expected error codes %s, got %s",
				formatValue(want.ErrorCodes), formatValue(got)))
		}
	}

	if want.Anomalies != nil {
		got := make([]string, len(snap.Anomalies))
		for i, a := range snap.Anomalies {
			got[i] = a.IndividualID
		}
		if !slices.Equal(got, want.Anomalies) {
			failures = append(failures, fmt.Sprintf("expected anomalies for %s, got %s",
				formatValue(want.Anomalies), formatValue(got)))
		}
	}
	return failures
}
