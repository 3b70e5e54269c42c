// Package model provides the genealogy domain types for gedcheck.
//
// The model has two entity kinds:
//   - Individual: a person with a name, sex, birth/death dates and the ids of
//     the families they belong to as child or spouse
//   - Family: a family unit with optional husband and wife, ordered children
//     and marriage/divorce dates
//
// Entities are owned by a Tree, an id-indexed arena. Family references to
// individuals (husband, wife, children) are non-owning pointers into the same
// Tree. Redeclaring an id overwrites the previous entity (last write wins).
// Nothing is ever removed from a Tree.
//
// # Invariants
//
// Construction with an empty id fails with ErrEmptyID. Family mutators check
// their invariants at mutation time and return *InvariantError on rejection,
// leaving the field unmodified:
//   - A husband must not be recorded as Female
//   - A wife must not be recorded as Male
//   - A deceased individual cannot be added as spouse once the family has a
//     marriage date
//
// Invariants are never re-checked retroactively. Setting a marriage date on a
// family whose spouse is already deceased is accepted.
package model
