package model

import (
	"slices"
	"time"
)

// Family is a family unit recorded in a Tree.
//
// Husband, wife and children are references into the owning Tree; a Family
// never owns the individuals it points to.
type Family struct {
	id       string
	husband  *Individual
	wife     *Individual
	children []*Individual
	married  *time.Time
	divorced *time.Time
}

// NewFamily creates a family with the given id.
// Returns ErrEmptyID if id is empty.
func NewFamily(id string) (*Family, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return &Family{id: id}, nil
}

// ID returns the family's cross-reference id.
func (f *Family) ID() string { return f.id }

// Husband returns the husband, or nil if none is recorded.
func (f *Family) Husband() *Individual { return f.husband }

// Wife returns the wife, or nil if none is recorded.
func (f *Family) Wife() *Individual { return f.wife }

// Children returns the children in the order they were added.
func (f *Family) Children() []*Individual { return slices.Clone(f.children) }

// MarriedDate returns the marriage date and whether one is recorded.
func (f *Family) MarriedDate() (time.Time, bool) { return dateOf(f.married) }

// SetMarriedDate records the marriage date.
// Spouses already assigned are not re-checked.
func (f *Family) SetMarriedDate(d time.Time) { f.married = &d }

// IsMarried reports whether a marriage date is recorded.
func (f *Family) IsMarried() bool { return f.married != nil }

// DivorcedDate returns the divorce date and whether one is recorded.
func (f *Family) DivorcedDate() (time.Time, bool) { return dateOf(f.divorced) }

// SetDivorcedDate records the divorce date.
func (f *Family) SetDivorcedDate(d time.Time) { f.divorced = &d }

// SetHusband assigns the husband.
//
// Returns *InvariantError and leaves the husband unchanged if p is nil,
// recorded as Female, or deceased while the family has a marriage date.
func (f *Family) SetHusband(p *Individual) error {
	if err := f.checkSpouse(p, RoleHusband, SexFemale); err != nil {
		return err
	}
	f.husband = p
	return nil
}

// SetWife assigns the wife.
//
// Returns *InvariantError and leaves the wife unchanged if p is nil,
// recorded as Male, or deceased while the family has a marriage date.
func (f *Family) SetWife(p *Individual) error {
	if err := f.checkSpouse(p, RoleWife, SexMale); err != nil {
		return err
	}
	f.wife = p
	return nil
}

// AddChild appends a child. Returns *InvariantError if p is nil.
func (f *Family) AddChild(p *Individual) error {
	if p == nil {
		return newMissingIndividualError(f.id, RoleChild)
	}
	f.children = append(f.children, p)
	return nil
}

// HasSpouse reports whether p is this family's husband or wife.
func (f *Family) HasSpouse(p *Individual) bool {
	if p == nil {
		return false
	}
	return f.husband == p || f.wife == p
}

func (f *Family) checkSpouse(p *Individual, role Role, forbidden Sex) error {
	if p == nil {
		return newMissingIndividualError(f.id, role)
	}
	if p.Sex() == forbidden {
		return newWrongSexError(f.id, p, role)
	}
	if p.IsDeceased() && f.IsMarried() {
		return newDeceasedSpouseError(f.id, p, role)
	}
	return nil
}
