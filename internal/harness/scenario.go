package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gedcheck/internal/gedcom"
)

// Scenario defines a conformance test scenario.
// A scenario parses one GEDCOM input and checks the result against
// expected counts, error codes, anomalies and per-record assertions.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is inline GEDCOM text. Exactly one of Input and File is set.
	Input string `yaml:"input,omitempty"`

	// File is a path to a GEDCOM file.
	// LoadScenarioWithBasePath resolves it relative to the scenario file.
	File string `yaml:"file,omitempty"`

	// Expect holds whole-result expectations.
	Expect Expectation `yaml:"expect"`

	// Assertions validate individual records and errors.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expectation holds whole-result expectations. Unset fields are not checked.
type Expectation struct {
	// Individuals is the expected number of individuals.
	Individuals *int `yaml:"individuals,omitempty"`

	// Families is the expected number of families.
	Families *int `yaml:"families,omitempty"`

	// Errors is the expected number of parse errors.
	Errors *int `yaml:"errors,omitempty"`

	// ErrorCodes is the expected sequence of error codes, in line order.
	ErrorCodes []string `yaml:"error_codes,omitempty"`

	// Anomalies is the expected sequence of flagged individual ids.
	// An explicit empty list asserts that nothing was flagged.
	Anomalies []string `yaml:"anomalies,omitempty"`
}

// Assertion validates one record of the result.
type Assertion struct {
	// Type specifies the assertion type:
	// - "individual": the individual ID exists and matches Fields
	// - "family": the family ID exists and matches Fields
	// - "error": an error with Code was recorded on Line
	// - "absent": no individual or family ID exists
	Type string `yaml:"type"`

	// ID is the record id (used by individual, family, absent).
	ID string `yaml:"id,omitempty"`

	// Fields are expected field values (used by individual, family).
	// Subset match - only specified fields are validated. Lists must match
	// in order; an empty string or list asserts the field is unset.
	Fields map[string]any `yaml:"fields,omitempty"`

	// Line is the 1-based input line (used by error).
	Line int `yaml:"line,omitempty"`

	// Code is the expected error code (used by error).
	Code string `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertIndividual = "individual"
	AssertFamily     = "family"
	AssertError      = "error"
	AssertAbsent     = "absent"
)

var knownErrorCodes = map[string]bool{
	string(gedcom.ErrCodeMalformedLine):   true,
	string(gedcom.ErrCodeUnrecognizedTag): true,
	string(gedcom.ErrCodeDateParse):       true,
	string(gedcom.ErrCodeInvariant):       true,
	string(gedcom.ErrCodeUnresolvedRef):   true,
	string(gedcom.ErrCodeMissingContext):  true,
	string(gedcom.ErrCodeInvalidValue):    true,
	string(gedcom.ErrCodeEmptyID):         true,
}

// LoadScenario reads and parses a scenario YAML file.
// A relative File is resolved against the scenario's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving a relative File against basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := parseScenario(data)
	if err != nil {
		return nil, err
	}

	// Resolve the input path BEFORE validation so existence is checked.
	if scenario.File != "" && !filepath.IsAbs(scenario.File) && basePath != "" {
		scenario.File = filepath.Join(basePath, scenario.File)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// parseScenario decodes YAML with strict field validation
// (catches typos like "assertion:" vs "assertions:").
func parseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Input == "" && s.File == "":
		return fmt.Errorf("one of input or file is required")
	case s.Input != "" && s.File != "":
		return fmt.Errorf("input and file are mutually exclusive")
	}

	if s.File != "" {
		if _, err := os.Stat(s.File); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", s.File)
		}
	}

	for _, n := range []*int{s.Expect.Individuals, s.Expect.Families, s.Expect.Errors} {
		if n != nil && *n < 0 {
			return fmt.Errorf("expect: counts must be non-negative")
		}
	}

	for i, code := range s.Expect.ErrorCodes {
		if !knownErrorCodes[code] {
			return fmt.Errorf("expect.error_codes[%d]: unknown error code %q", i, code)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertIndividual, AssertFamily:
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for %s", index, a.Type)
		}
		for name, value := range a.Fields {
			if !knownField(a.Type, name) {
				return fmt.Errorf("assertions[%d]: unknown %s field %q", index, a.Type, name)
			}
			if _, err := normalizeValue(value); err != nil {
				return fmt.Errorf("assertions[%d]: field %q: %w", index, name, err)
			}
		}
	case AssertError:
		if a.Line < 1 {
			return fmt.Errorf("assertions[%d]: line must be positive for error", index)
		}
		if !knownErrorCodes[a.Code] {
			return fmt.Errorf("assertions[%d]: unknown error code %q", index, a.Code)
		}
	case AssertAbsent:
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for absent", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// knownField reports whether name is an assertable field of the record kind.
func knownField(kind, name string) bool {
	if kind == AssertFamily {
		_, ok := familyFields[name]
		return ok
	}
	_, ok := individualFields[name]
	return ok
}
