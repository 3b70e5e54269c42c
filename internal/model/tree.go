package model

import (
	"maps"
	"slices"
)

// Tree is the owning arena for individuals and families, indexed by id.
//
// Put overwrites any entity already stored under the same id (last write
// wins). Families that referenced the overwritten individual keep pointing to
// the old value. Entities are never removed.
//
// A Tree is not safe for concurrent mutation. Readers may share it once
// parsing has finished.
type Tree struct {
	individuals map[string]*Individual
	families    map[string]*Family
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		individuals: make(map[string]*Individual),
		families:    make(map[string]*Family),
	}
}

// PutIndividual stores p under its id, replacing any previous entry.
func (t *Tree) PutIndividual(p *Individual) {
	t.individuals[p.ID()] = p
}

// PutFamily stores f under its id, replacing any previous entry.
func (t *Tree) PutFamily(f *Family) {
	t.families[f.ID()] = f
}

// Individual looks up an individual by id.
func (t *Tree) Individual(id string) (*Individual, bool) {
	p, ok := t.individuals[id]
	return p, ok
}

// Family looks up a family by id.
func (t *Tree) Family(id string) (*Family, bool) {
	f, ok := t.families[id]
	return f, ok
}

// Individuals returns all individuals ordered by id.
func (t *Tree) Individuals() []*Individual {
	out := make([]*Individual, 0, len(t.individuals))
	for _, id := range slices.Sorted(maps.Keys(t.individuals)) {
		out = append(out, t.individuals[id])
	}
	return out
}

// Families returns all families ordered by id.
func (t *Tree) Families() []*Family {
	out := make([]*Family, 0, len(t.families))
	for _, id := range slices.Sorted(maps.Keys(t.families)) {
		out = append(out, t.families[id])
	}
	return out
}

// IndividualCount returns the number of individuals.
func (t *Tree) IndividualCount() int { return len(t.individuals) }

// FamilyCount returns the number of families.
func (t *Tree) FamilyCount() int { return len(t.families) }
