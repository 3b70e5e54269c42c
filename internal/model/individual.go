package model

import (
	"slices"
	"time"
)

// Individual is a person recorded in a Tree.
type Individual struct {
	id       string
	name     string
	sex      Sex
	birth    *time.Time
	death    *time.Time
	childOf  []string
	spouseOf []string
}

// NewIndividual creates an individual with the given id.
// Returns ErrEmptyID if id is empty.
func NewIndividual(id string) (*Individual, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	return &Individual{id: id}, nil
}

// ID returns the individual's cross-reference id.
func (p *Individual) ID() string { return p.id }

// Name returns the recorded name, or "" if none was recorded.
func (p *Individual) Name() string { return p.name }

// SetName records the individual's name.
func (p *Individual) SetName(name string) { p.name = name }

// Sex returns the recorded sex (SexUnknown by default).
func (p *Individual) Sex() Sex { return p.sex }

// SetSex records the individual's sex.
func (p *Individual) SetSex(sex Sex) { p.sex = sex }

// BirthDate returns the birth date and whether one is recorded.
func (p *Individual) BirthDate() (time.Time, bool) { return dateOf(p.birth) }

// SetBirthDate records the birth date.
func (p *Individual) SetBirthDate(d time.Time) { p.birth = &d }

// DeathDate returns the death date and whether one is recorded.
func (p *Individual) DeathDate() (time.Time, bool) { return dateOf(p.death) }

// SetDeathDate records the death date.
func (p *Individual) SetDeathDate(d time.Time) { p.death = &d }

// IsDeceased reports whether a death date is recorded.
func (p *Individual) IsDeceased() bool { return p.death != nil }

// ChildOfFamilyIDs returns the ids of families this individual is a child of,
// in the order they were recorded.
func (p *Individual) ChildOfFamilyIDs() []string { return slices.Clone(p.childOf) }

// AddChildOfFamily appends a family id to the child-of list.
func (p *Individual) AddChildOfFamily(familyID string) {
	p.childOf = append(p.childOf, familyID)
}

// SpouseOfFamilyIDs returns the ids of families this individual is a spouse
// in, in the order they were recorded.
func (p *Individual) SpouseOfFamilyIDs() []string { return slices.Clone(p.spouseOf) }

// AddSpouseOfFamily appends a family id to the spouse-of list.
func (p *Individual) AddSpouseOfFamily(familyID string) {
	p.spouseOf = append(p.spouseOf, familyID)
}

// dateOf unpacks an optional date. Presence is tracked by the pointer, not by
// the value: 1 JAN 1 is time.Time's zero value and still a recorded date.
func dateOf(d *time.Time) (time.Time, bool) {
	if d == nil {
		return time.Time{}, false
	}
	return *d, true
}
