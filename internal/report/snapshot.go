package report

import (
	"time"

	"github.com/roach88/gedcheck/internal/anomaly"
	"github.com/roach88/gedcheck/internal/gedcom"
	"github.com/roach88/gedcheck/internal/model"
)

// DateLayout is the layout of every date in a Snapshot.
const DateLayout = "2006-01-02"

// Snapshot is the serializable form of a parse result.
type Snapshot struct {
	Source      string             `json:"source"`
	Individuals []IndividualRecord `json:"individuals"`
	Families    []FamilyRecord     `json:"families"`
	Errors      []ErrorRecord      `json:"errors"`
	Anomalies   []AnomalyRecord    `json:"anomalies"`
}

// IndividualRecord is one individual. Empty optional fields are omitted.
type IndividualRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Sex      string   `json:"sex"` // "M" | "F" | "U"
	Birth    string   `json:"birth,omitempty"`
	Death    string   `json:"death,omitempty"`
	ChildOf  []string `json:"child_of,omitempty"`
	SpouseOf []string `json:"spouse_of,omitempty"`
}

// FamilyRecord is one family. Spouses and children are individual ids.
type FamilyRecord struct {
	ID       string   `json:"id"`
	Husband  string   `json:"husband,omitempty"`
	Wife     string   `json:"wife,omitempty"`
	Children []string `json:"children,omitempty"`
	Married  string   `json:"married,omitempty"`
	Divorced string   `json:"divorced,omitempty"`
}

// ErrorRecord is one parse error.
type ErrorRecord struct {
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AnomalyRecord is one detected anomaly.
type AnomalyRecord struct {
	Code         string   `json:"code"`
	IndividualID string   `json:"individual_id"`
	Families     []string `json:"families"`
	Message      string   `json:"message"`
}

// FromResult builds a Snapshot. source names the input (a path or "-").
func FromResult(source string, res gedcom.Result) Snapshot {
	s := Snapshot{
		Source:      source,
		Individuals: []IndividualRecord{},
		Families:    []FamilyRecord{},
		Errors:      []ErrorRecord{},
		Anomalies:   []AnomalyRecord{},
	}

	for _, p := range res.Tree.Individuals() {
		s.Individuals = append(s.Individuals, individualRecord(p))
	}
	for _, f := range res.Tree.Families() {
		s.Families = append(s.Families, familyRecord(f))
	}
	for _, e := range res.Errors {
		s.Errors = append(s.Errors, ErrorRecord{Line: e.Line, Code: string(e.Code), Message: e.Message})
	}
	for _, a := range res.Anomalies {
		s.Anomalies = append(s.Anomalies, anomalyRecord(a))
	}
	return s
}

func individualRecord(p *model.Individual) IndividualRecord {
	r := IndividualRecord{
		ID:       p.ID(),
		Name:     p.Name(),
		Sex:      p.Sex().Code(),
		ChildOf:  p.ChildOfFamilyIDs(),
		SpouseOf: p.SpouseOfFamilyIDs(),
	}
	r.Birth = formatDate(p.BirthDate())
	r.Death = formatDate(p.DeathDate())
	return r
}

func familyRecord(f *model.Family) FamilyRecord {
	r := FamilyRecord{ID: f.ID()}
	if h := f.Husband(); h != nil {
		r.Husband = h.ID()
	}
	if w := f.Wife(); w != nil {
		r.Wife = w.ID()
	}
	for _, c := range f.Children() {
		r.Children = append(r.Children, c.ID())
	}
	r.Married = formatDate(f.MarriedDate())
	r.Divorced = formatDate(f.DivorcedDate())
	return r
}

func anomalyRecord(a anomaly.Anomaly) AnomalyRecord {
	families := a.FamilyIDs
	if families == nil {
		families = []string{}
	}
	return AnomalyRecord{
		Code:         string(a.Code),
		IndividualID: a.IndividualID,
		Families:     families,
		Message:      a.Message,
	}
}

func formatDate(d time.Time, ok bool) string {
	if !ok {
		return ""
	}
	return d.Format(DateLayout)
}

// Summary holds counts for display.
type Summary struct {
	Individuals int `json:"individuals"`
	Families    int `json:"families"`
	Errors      int `json:"errors"`
	Anomalies   int `json:"anomalies"`
}

// Summary counts the snapshot's records.
func (s Snapshot) Summary() Summary {
	return Summary{
		Individuals: len(s.Individuals),
		Families:    len(s.Families),
		Errors:      len(s.Errors),
		Anomalies:   len(s.Anomalies),
	}
}

// canonicalMap converts the snapshot to plain maps and slices for
// MarshalCanonical. Omitted optional fields match the json tags.
func (s Snapshot) canonicalMap() map[string]any {
	individuals := make([]any, len(s.Individuals))
	for i, r := range s.Individuals {
		m := map[string]any{"id": r.ID, "sex": r.Sex}
		putString(m, "name", r.Name)
		putString(m, "birth", r.Birth)
		putString(m, "death", r.Death)
		putStrings(m, "child_of", r.ChildOf)
		putStrings(m, "spouse_of", r.SpouseOf)
		individuals[i] = m
	}

	families := make([]any, len(s.Families))
	for i, r := range s.Families {
		m := map[string]any{"id": r.ID}
		putString(m, "husband", r.Husband)
		putString(m, "wife", r.Wife)
		putStrings(m, "children", r.Children)
		putString(m, "married", r.Married)
		putString(m, "divorced", r.Divorced)
		families[i] = m
	}

	errs := make([]any, len(s.Errors))
	for i, r := range s.Errors {
		errs[i] = map[string]any{"line": r.Line, "code": r.Code, "message": r.Message}
	}

	anomalies := make([]any, len(s.Anomalies))
	for i, r := range s.Anomalies {
		anomalies[i] = map[string]any{
			"code":          r.Code,
			"individual_id": r.IndividualID,
			"families":      stringsToAny(r.Families),
			"message":       r.Message,
		}
	}

	return map[string]any{
		"source":      s.Source,
		"individuals": individuals,
		"families":    families,
		"errors":      errs,
		"anomalies":   anomalies,
	}
}

func putString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func putStrings(m map[string]any, key string, values []string) {
	if len(values) > 0 {
		m[key] = stringsToAny(values)
	}
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
