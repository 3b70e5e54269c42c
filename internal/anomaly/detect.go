package anomaly

import (
	"fmt"

	"github.com/roach88/gedcheck/internal/model"
)

// Code categorizes anomalies.
type Code string

const (
	// CodeMultipleMarriages indicates a spouse in more than one married family.
	CodeMultipleMarriages Code = "MULTIPLE_MARRIAGES"
)

// Anomaly is one detected irregularity.
type Anomaly struct {
	// Code identifies the check that fired.
	Code Code

	// IndividualID identifies the individual concerned.
	IndividualID string

	// FamilyIDs lists the families involved, in the individual's FAMS order.
	FamilyIDs []string

	// Message is the human-readable report line.
	Message string
}

// String returns the report line.
func (a Anomaly) String() string { return a.Message }

// Source is the read-only view of a tree that detection needs.
// *model.Tree satisfies it.
type Source interface {
	Individuals() []*model.Individual
	Family(id string) (*model.Family, bool)
}

// Detect runs every check over src and returns the findings ordered by
// individual id.
func Detect(src Source) []Anomaly {
	var out []Anomaly
	for _, p := range src.Individuals() {
		married := MarriedFamilies(src, p)
		if len(married) > 1 {
			out = append(out, Anomaly{
				Code:         CodeMultipleMarriages,
				IndividualID: p.ID(),
				FamilyIDs:    married,
				Message:      fmt.Sprintf("Anomaly - %s married more than once", p.Name()),
			})
		}
	}
	return out
}

// MarriedFamilies returns the distinct families listed in p's spouse-of ids
// that exist in src, name p as husband or wife, and have a marriage date.
func MarriedFamilies(src Source, p *model.Individual) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, id := range p.SpouseOfFamilyIDs() {
		if seen[id] {
			continue
		}
		seen[id] = true

		fam, ok := src.Family(id)
		if !ok {
			continue
		}
		if fam.HasSpouse(p) && fam.IsMarried() {
			ids = append(ids, id)
		}
	}
	return ids
}
