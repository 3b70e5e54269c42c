package report

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// SchemaError reports a JSON document that does not satisfy #Report.
type SchemaError struct {
	// Details lists every violation, one per line, with CUE paths.
	Details string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("report does not match schema: %s", e.Details)
}

// Validate checks a JSON report against the embedded #Report schema.
func Validate(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile report schema: %w", err)
	}

	doc := ctx.CompileBytes(data, cue.Filename("report.json"))
	if err := doc.Err(); err != nil {
		return fmt.Errorf("decode report: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Report")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Details: cueerrors.Details(err, nil)}
	}
	return nil
}

// ValidateSnapshot validates the canonical form of s.
func ValidateSnapshot(s Snapshot) error {
	data, err := s.Canonical()
	if err != nil {
		return err
	}
	return Validate(data)
}
