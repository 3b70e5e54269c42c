package gedcom

import (
	"errors"
	"strings"
)

// Line is one tokenized input line.
type Line struct {
	// Level is the nesting depth (the leading digit).
	Level int

	// Tag is the raw tag keyword. It is validated by ParseTag, not Tokenize.
	Tag string

	// Arg is the argument text. On level-0 lines this is the cross-reference
	// id with its @ markers removed.
	Arg string
}

var (
	errEmptyLine  = errors.New("empty line")
	errNoLevel    = errors.New("line does not start with a level digit")
	errMissingTag = errors.New("line has no tag")
)

// Tokenize splits a line into level, tag and argument.
//
// The split is best-effort: only a line without a leading digit or without
// any tag fails. Whether the tag is recognized is checked by the caller.
func Tokenize(text string) (Line, error) {
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return Line{}, errEmptyLine
	}

	c := text[0]
	if c < '0' || c > '9' {
		return Line{}, errNoLevel
	}
	line := Line{Level: int(c - '0')}

	rest := strings.TrimLeft(text[1:], " ")
	if rest == "" {
		return Line{}, errMissingTag
	}

	if line.Level == 0 {
		// "0 @I1@ INDI": the id precedes the tag.
		id, tail, found := strings.Cut(rest, " ")
		if !found {
			line.Tag = id
			return line, nil
		}
		line.Arg = strings.Trim(id, "@")
		// The tag is the whole remainder, so "INDI junk" fails ParseTag.
		line.Tag = strings.Trim(tail, " ")
		if line.Tag == "" {
			return Line{}, errMissingTag
		}
		return line, nil
	}

	line.Tag, line.Arg, _ = strings.Cut(rest, " ")
	return line, nil
}

// parseRef extracts a cross-reference id from an argument such as "@F1@".
func parseRef(arg string) string {
	return strings.Trim(strings.TrimSpace(arg), "@")
}
