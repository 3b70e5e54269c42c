package gedcom

// Tag is a recognized GEDCOM tag.
type Tag int

const (
	// TagInvalid is the zero value; it is never produced by ParseTag.
	TagInvalid Tag = iota
	TagIndividual
	TagName
	TagSex
	TagBirth
	TagDeath
	TagChildOf
	TagSpouseOf
	TagFamily
	TagMarriage
	TagHusband
	TagWife
	TagChild
	TagDivorce
	TagDate
	TagTrailer
	TagNote
)

var tagKeywords = map[Tag]string{
	TagIndividual: "INDI",
	TagName:       "NAME",
	TagSex:        "SEX",
	TagBirth:      "BIRT",
	TagDeath:      "DEAT",
	TagChildOf:    "FAMC",
	TagSpouseOf:   "FAMS",
	TagFamily:     "FAM",
	TagMarriage:   "MARR",
	TagHusband:    "HUSB",
	TagWife:       "WIFE",
	TagChild:      "CHIL",
	TagDivorce:    "DIV",
	TagDate:       "DATE",
	TagTrailer:    "TRLR",
	TagNote:       "NOTE",
}

var keywordTags = func() map[string]Tag {
	m := make(map[string]Tag, len(tagKeywords))
	for tag, kw := range tagKeywords {
		m[kw] = tag
	}
	return m
}()

// ParseTag maps a keyword to a Tag. Matching is case-sensitive.
func ParseTag(keyword string) (Tag, bool) {
	tag, ok := keywordTags[keyword]
	return tag, ok
}

// String returns the GEDCOM keyword for the tag.
func (t Tag) String() string {
	if kw, ok := tagKeywords[t]; ok {
		return kw
	}
	return "INVALID"
}
