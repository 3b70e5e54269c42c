package model

// Sex is the recorded sex of an individual.
type Sex int

const (
	// SexUnknown is the default when no SEX record was seen or the code is unrecognized.
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

// ParseSex maps a SEX record value to a Sex using its first character.
// "M" is Male, "F" is Female, anything else (including empty) is Unknown.
func ParseSex(code string) Sex {
	if code == "" {
		return SexUnknown
	}
	switch code[0] {
	case 'M':
		return SexMale
	case 'F':
		return SexFemale
	default:
		return SexUnknown
	}
}

// Code returns the single-letter code used in reports: M, F or U.
func (s Sex) Code() string {
	switch s {
	case SexMale:
		return "M"
	case SexFemale:
		return "F"
	default:
		return "U"
	}
}

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return "unknown"
	}
}

// Role is the position an individual takes in a family.
type Role string

const (
	RoleHusband Role = "husband"
	RoleWife    Role = "wife"
	RoleChild   Role = "child"
)
