package model

import (
	"errors"
	"fmt"
)

// ErrEmptyID is returned when constructing an entity without an id.
var ErrEmptyID = errors.New("id must not be empty")

// InvariantCode categorizes invariant violations.
type InvariantCode string

const (
	// ErrCodeWrongSex indicates the individual's sex conflicts with the spouse role.
	ErrCodeWrongSex InvariantCode = "WRONG_SEX_FOR_ROLE"

	// ErrCodeDeceasedSpouse indicates a deceased individual was added as spouse
	// of a family that already has a marriage date.
	ErrCodeDeceasedSpouse InvariantCode = "DECEASED_SPOUSE"

	// ErrCodeMissingIndividual indicates a nil individual was passed to a mutator.
	ErrCodeMissingIndividual InvariantCode = "MISSING_INDIVIDUAL"
)

// InvariantError is returned by a mutator that rejected an assignment.
// The mutated field is left unchanged.
type InvariantError struct {
	// Code identifies the violated invariant.
	Code InvariantCode

	// Message is a human-readable description.
	Message string

	// FamilyID identifies the family being mutated.
	FamilyID string

	// IndividualID identifies the rejected individual (empty for nil).
	IndividualID string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvariantError returns true if err is, or wraps, an *InvariantError.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

func newWrongSexError(familyID string, p *Individual, role Role) *InvariantError {
	return &InvariantError{
		Code:         ErrCodeWrongSex,
		Message:      fmt.Sprintf("individual %s is %s and cannot be %s of family %s", p.ID(), p.Sex(), role, familyID),
		FamilyID:     familyID,
		IndividualID: p.ID(),
	}
}

func newDeceasedSpouseError(familyID string, p *Individual, role Role) *InvariantError {
	return &InvariantError{
		Code:         ErrCodeDeceasedSpouse,
		Message:      fmt.Sprintf("individual %s is deceased and cannot be %s of married family %s", p.ID(), role, familyID),
		FamilyID:     familyID,
		IndividualID: p.ID(),
	}
}

func newMissingIndividualError(familyID string, role Role) *InvariantError {
	return &InvariantError{
		Code:     ErrCodeMissingIndividual,
		Message:  fmt.Sprintf("no individual given for %s of family %s", role, familyID),
		FamilyID: familyID,
	}
}
