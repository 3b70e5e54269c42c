package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustIndividual(t *testing.T, id string, sex Sex) *Individual {
	t.Helper()
	p, err := NewIndividual(id)
	require.NoError(t, err)
	p.SetSex(sex)
	return p
}

func mustFamily(t *testing.T, id string) *Family {
	t.Helper()
	f, err := NewFamily(id)
	require.NoError(t, err)
	return f
}

func TestNewFamily_EmptyID(t *testing.T) {
	f, err := NewFamily("")
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestFamily_Accessors(t *testing.T) {
	f := mustFamily(t, "123")
	husband := mustIndividual(t, "999", SexMale)
	wife := mustIndividual(t, "543", SexFemale)
	child := mustIndividual(t, "234", SexUnknown)

	require.NoError(t, f.SetHusband(husband))
	require.NoError(t, f.SetWife(wife))
	require.NoError(t, f.AddChild(child))
	f.SetMarriedDate(date(1902, time.July, 8))
	f.SetDivorcedDate(date(1934, time.December, 17))

	assert.Equal(t, "123", f.ID())
	assert.Same(t, husband, f.Husband())
	assert.Same(t, wife, f.Wife())
	require.Len(t, f.Children(), 1)
	assert.Equal(t, "234", f.Children()[0].ID())

	married, ok := f.MarriedDate()
	assert.True(t, ok)
	assert.Equal(t, date(1902, time.July, 8), married)

	divorced, ok := f.DivorcedDate()
	assert.True(t, ok)
	assert.Equal(t, date(1934, time.December, 17), divorced)
}

func TestFamily_SetHusbandAsFemale(t *testing.T) {
	f := mustFamily(t, "123")
	female := mustIndividual(t, "123", SexFemale)

	require.NoError(t, f.SetWife(female))
	err := f.SetHusband(female)

	require.Error(t, err)
	var ie *InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeWrongSex, ie.Code)
	assert.Equal(t, "123", ie.FamilyID)
	assert.Nil(t, f.Husband(), "husband must be left unset")
}

func TestFamily_SetWifeAsMale(t *testing.T) {
	f := mustFamily(t, "123")
	male := mustIndividual(t, "123", SexMale)

	require.NoError(t, f.SetHusband(male))
	err := f.SetWife(male)

	require.Error(t, err)
	assert.True(t, IsInvariantError(err))
	assert.Nil(t, f.Wife())
}

func TestFamily_UnknownSexAllowedInEitherRole(t *testing.T) {
	f := mustFamily(t, "F1")
	p := mustIndividual(t, "I1", SexUnknown)

	assert.NoError(t, f.SetHusband(p))
	assert.NoError(t, f.SetWife(p))
}

func TestFamily_DeceasedSpouseInMarriage(t *testing.T) {
	tests := []struct {
		name string
		sex  Sex
		set  func(f *Family, p *Individual) error
		get  func(f *Family) *Individual
	}{
		{"husband", SexMale, (*Family).SetHusband, (*Family).Husband},
		{"wife", SexFemale, (*Family).SetWife, (*Family).Wife},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustFamily(t, "123")
			f.SetMarriedDate(date(1902, time.July, 8))

			p := mustIndividual(t, "123", tt.sex)
			p.SetDeathDate(date(1902, time.July, 8))

			err := tt.set(f, p)
			var ie *InvariantError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, ErrCodeDeceasedSpouse, ie.Code)
			assert.Nil(t, tt.get(f))
		})
	}
}

func TestFamily_YearOneDatesAreRecorded(t *testing.T) {
	yearOne := date(1, time.January, 1)
	require.True(t, yearOne.IsZero())

	f := mustFamily(t, "F1")
	f.SetMarriedDate(yearOne)
	f.SetDivorcedDate(yearOne)
	assert.True(t, f.IsMarried())
	got, ok := f.MarriedDate()
	assert.True(t, ok)
	assert.Equal(t, yearOne, got)
	_, ok = f.DivorcedDate()
	assert.True(t, ok)

	p := mustIndividual(t, "I1", SexMale)
	p.SetBirthDate(yearOne)
	p.SetDeathDate(yearOne)
	assert.True(t, p.IsDeceased())
	_, ok = p.BirthDate()
	assert.True(t, ok)

	err := f.SetHusband(p)
	var ie *InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeDeceasedSpouse, ie.Code)
}

func TestFamily_DeceasedSpouseWithoutMarriageDate(t *testing.T) {
	f := mustFamily(t, "F1")
	p := mustIndividual(t, "I1", SexMale)
	p.SetDeathDate(date(1950, time.March, 1))

	require.NoError(t, f.SetHusband(p))

	// Invariants are checked at mutation time only.
	f.SetMarriedDate(date(1960, time.January, 1))
	assert.Same(t, p, f.Husband())
}

func TestFamily_NilIndividual(t *testing.T) {
	f := mustFamily(t, "F1")

	var ie *InvariantError
	require.ErrorAs(t, f.SetHusband(nil), &ie)
	assert.Equal(t, ErrCodeMissingIndividual, ie.Code)
	require.ErrorAs(t, f.SetWife(nil), &ie)
	require.ErrorAs(t, f.AddChild(nil), &ie)
	assert.Empty(t, f.Children())
}

func TestFamily_ChildrenOrderAndCopy(t *testing.T) {
	f := mustFamily(t, "F1")
	a := mustIndividual(t, "I2", SexUnknown)
	b := mustIndividual(t, "I1", SexUnknown)
	require.NoError(t, f.AddChild(a))
	require.NoError(t, f.AddChild(b))

	children := f.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "I2", children[0].ID())
	assert.Equal(t, "I1", children[1].ID())

	children[0] = nil
	assert.NotNil(t, f.Children()[0], "Children must return a copy")
}

func TestFamily_HasSpouse(t *testing.T) {
	f := mustFamily(t, "F1")
	h := mustIndividual(t, "I1", SexMale)
	other := mustIndividual(t, "I2", SexMale)
	require.NoError(t, f.SetHusband(h))

	assert.True(t, f.HasSpouse(h))
	assert.False(t, f.HasSpouse(other))
	assert.False(t, f.HasSpouse(nil))
}
