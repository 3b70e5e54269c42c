package gedcom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Line
	}{
		{"level 0 individual", "0 @I1@ INDI", Line{Level: 0, Tag: "INDI", Arg: "I1"}},
		{"level 0 family", "0 @F23@ FAM", Line{Level: 0, Tag: "FAM", Arg: "F23"}},
		{"level 0 without id", "0 TRLR", Line{Level: 0, Tag: "TRLR"}},
		{"level 0 trailing text stays in tag", "0 @I1@ INDI junk", Line{Level: 0, Tag: "INDI junk", Arg: "I1"}},
		{"level 0 trailing spaces", "0 @I1@ INDI  ", Line{Level: 0, Tag: "INDI", Arg: "I1"}},
		{"level 1 with argument", "1 NAME John /Doe/", Line{Level: 1, Tag: "NAME", Arg: "John /Doe/"}},
		{"level 1 without argument", "1 BIRT", Line{Level: 1, Tag: "BIRT"}},
		{"level 1 reference", "1 HUSB @I1@", Line{Level: 1, Tag: "HUSB", Arg: "@I1@"}},
		{"level 2 date", "2 DATE 1 JAN 1900", Line{Level: 2, Tag: "DATE", Arg: "1 JAN 1900"}},
		{"crlf", "1 SEX M\r", Line{Level: 1, Tag: "SEX", Arg: "M"}},
		{"level 3", "3 FOO bar", Line{Level: 3, Tag: "FOO", Arg: "bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no level digit", "X NAME foo"},
		{"level only", "1"},
		{"level and spaces", "1   "},
		{"level 0 id without tag", "0 @I1@ "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestParseRef(t *testing.T) {
	assert.Equal(t, "F1", parseRef("@F1@"))
	assert.Equal(t, "F1", parseRef(" @F1@ "))
	assert.Equal(t, "F1", parseRef("F1"))
	assert.Equal(t, "", parseRef("@@"))
}

func TestParseTag(t *testing.T) {
	for _, kw := range []string{"INDI", "NAME", "SEX", "BIRT", "DEAT", "FAMC", "FAMS", "FAM",
		"MARR", "HUSB", "WIFE", "CHIL", "DIV", "DATE", "TRLR", "NOTE"} {
		tag, ok := ParseTag(kw)
		require.True(t, ok, kw)
		assert.Equal(t, kw, tag.String())
	}

	for _, kw := range []string{"HEAD", "indi", "SOUR", ""} {
		_, ok := ParseTag(kw)
		assert.False(t, ok, kw)
	}

	assert.Equal(t, "INVALID", TagInvalid.String())
}
