package testutil

import (
	"testing"

	"github.com/roach88/gedcheck/internal/gedcom"
	"github.com/roach88/gedcheck/internal/report"
)

// Parse feeds lines to a fresh parser and runs anomaly detection.
func Parse(t testing.TB, lines ...string) *gedcom.Parser {
	t.Helper()
	p := gedcom.NewParser()
	for _, line := range lines {
		p.ParseLine(line)
	}
	p.DetectAnomalies()
	return p
}

// ParseSnapshot parses lines and converts the result to a snapshot.
func ParseSnapshot(t testing.TB, source string, lines ...string) report.Snapshot {
	t.Helper()
	return report.FromResult(source, Parse(t, lines...).Result())
}

// MarriedTwice is a small tree where I1 is married in F1 and F2 and the
// divorce date of F2 is unparseable (line 21).
var MarriedTwice = []string{
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
