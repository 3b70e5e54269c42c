package gedcom

import (
	"errors"
	"fmt"

	"github.com/roach88/gedcheck/internal/model"
)

// ErrorCode categorizes parse errors.
type ErrorCode string

const (
	// ErrCodeMalformedLine indicates a line that could not be tokenized at all.
	ErrCodeMalformedLine ErrorCode = "MALFORMED_LINE"

	// ErrCodeUnrecognizedTag indicates a tag outside the recognized set.
	ErrCodeUnrecognizedTag ErrorCode = "UNRECOGNIZED_TAG"

	// ErrCodeDateParse indicates a DATE argument that is not "day month year".
	ErrCodeDateParse ErrorCode = "DATE_PARSE_FAILURE"

	// ErrCodeInvariant indicates the model rejected a mutation.
	ErrCodeInvariant ErrorCode = "INVARIANT_VIOLATION"

	// ErrCodeUnresolvedRef indicates a reference to an undeclared individual.
	ErrCodeUnresolvedRef ErrorCode = "UNRESOLVED_REFERENCE"

	// ErrCodeMissingContext indicates a sub-record with no matching open record.
	ErrCodeMissingContext ErrorCode = "MISSING_CONTEXT"

	// ErrCodeInvalidValue indicates an empty or unusable argument.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"

	// ErrCodeEmptyID indicates a level-0 INDI or FAM record without an id.
	ErrCodeEmptyID ErrorCode = "EMPTY_ID"
)

// ParseError is one recorded failure. Each failed line produces exactly one.
type ParseError struct {
	// Line is the 1-based line number in the input.
	Line int

	// Code identifies the error category.
	Code ErrorCode

	// Tag is the raw tag keyword of the failing line, if it was tokenized.
	Tag string

	// Text is the raw input line.
	Text string

	// Message is a human-readable description.
	Message string

	// Err is the underlying error (*DateError, *model.InvariantError, ...), if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsDateError returns true if err is, or wraps, a *DateError.
func IsDateError(err error) bool {
	var de *DateError
	return errors.As(err, &de)
}

// IsInvariantError returns true if err wraps a model invariant violation.
func IsInvariantError(err error) bool {
	return model.IsInvariantError(err)
}

func newParseError(code ErrorCode, message string, err error) *ParseError {
	return &ParseError{Code: code, Message: message, Err: err}
}

func wrapParseError(code ErrorCode, err error) *ParseError {
	return &ParseError{Code: code, Message: err.Error(), Err: err}
}
