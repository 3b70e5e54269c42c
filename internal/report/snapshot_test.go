package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gedcheck/internal/gedcom"
)

func parseResult(t *testing.T, lines ...string) gedcom.Result {
	t.Helper()
	p := gedcom.NewParser()
	for _, line := range lines {
		p.ParseLine(line)
	}
	p.DetectAnomalies()
	return p.Result()
}

var marriedTwice = []string{
	"0 @I1@ INDI",
	"1 NAME John /Doe/",
	"1 SEX M",
	"1 BIRT",
	"2 DATE 1 JAN 1900",
	"1 FAMS @F1@",
	"1 FAMS @F2@",
	"0 @I2@ INDI",
	"1 SEX F",
	"1 FAMC @F1@",
	"0 @F1@ FAM",
	"1 HUSB @I1@",
	"1 CHIL @I2@",
	"1 MARR",
	"2 DATE 5 JUL 2002",
	"0 @F2@ FAM",
	"1 HUSB @I1@",
	"1 MARR",
	"2 DATE 12 DEC 2012",
	"1 DIV",
	"2 DATE 31 FOOBAR 2013",
}

func TestFromResult(t *testing.T) {
	s := FromResult("family.ged", parseResult(t, marriedTwice...))

	assert.Equal(t, "family.ged", s.Source)
	require.Len(t, s.Individuals, 2)
	assert.Equal(t, IndividualRecord{
		ID:       "I1",
		Name:     "John /Doe/",
		Sex:      "M",
		Birth:    "1900-01-01",
		SpouseOf: []string{"F1", "F2"},
	}, s.Individuals[0])
	assert.Equal(t, IndividualRecord{ID: "I2", Sex: "F", ChildOf: []string{"F1"}}, s.Individuals[1])

	require.Len(t, s.Families, 2)
	assert.Equal(t, FamilyRecord{ID: "F1", Husband: "I1", Children: []string{"I2"}, Married: "2002-07-05"}, s.Families[0])
	assert.Equal(t, FamilyRecord{ID: "F2", Husband: "I1", Married: "2012-12-12"}, s.Families[1])

	require.Len(t, s.Errors, 1)
	assert.Equal(t, 21, s.Errors[0].Line)
	assert.Equal(t, "DATE_PARSE_FAILURE", s.Errors[0].Code)

	require.Len(t, s.Anomalies, 1)
	assert.Equal(t, AnomalyRecord{
		Code:         "MULTIPLE_MARRIAGES",
		IndividualID: "I1",
		Families:     []string{"F1", "F2"},
		Message:      "Anomaly - John /Doe/ married more than once",
	}, s.Anomalies[0])

	assert.Equal(t, Summary{Individuals: 2, Families: 2, Errors: 1, Anomalies: 1}, s.Summary())
}

func TestFromResult_YearOneDate(t *testing.T) {
	snap := FromResult("inline", parseResult(t,
		"0 @I1@ INDI",
		"1 BIRT",
		"2 DATE 1 JAN 1",
	))

	require.Len(t, snap.Individuals, 1)
	assert.Equal(t, "0001-01-01", snap.Individuals[0].Birth)
	require.NoError(t, ValidateSnapshot(snap))
}

func TestFromResult_EmptyCollectionsAreNotNil(t *testing.T) {
	s := FromResult("-", parseResult(t))

	data, err := s.Canonical()
	require.NoError(t, err)
	assert.Equal(t, `{"anomalies":[],"errors":[],"families":[],"individuals":[],"source":"-"}`, string(data))
}

func TestSnapshot_CanonicalMatchesJSONTags(t *testing.T) {
	s := FromResult("family.ged", parseResult(t, marriedTwice...))

	canonical, err := s.Canonical()
	require.NoError(t, err)
	plain, err := json.Marshal(s)
	require.NoError(t, err)

	var a, b map[string]any
	require.NoError(t, json.Unmarshal(canonical, &a))
	require.NoError(t, json.Unmarshal(plain, &b))
	assert.Equal(t, b, a)
}

func TestHash(t *testing.T) {
	s1 := FromResult("family.ged", parseResult(t, marriedTwice...))
	s2 := FromResult("family.ged", parseResult(t, marriedTwice...))

	h1, err := Hash(s1)
	require.NoError(t, err)
	h2, err := Hash(s2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "hash must be deterministic")
	assert.Len(t, h1, 64)

	s2.Individuals[0].Name = "Someone Else"
	h3, err := Hash(s2)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}
