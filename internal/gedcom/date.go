package gedcom

import (
	"fmt"
	"strings"
	"time"
)

// months maps month names to calendar months. Names are matched exactly:
// GEDCOM codes (JAN), full English names (January) and short names (Jan).
var months = func() map[string]time.Month {
	m := make(map[string]time.Month, 36)
	for month := time.January; month <= time.December; month++ {
		full := month.String()
		m[full] = month
		m[full[:3]] = month
		m[strings.ToUpper(full[:3])] = month
	}
	return m
}()

// DateError is returned by ParseDate for malformed input.
type DateError struct {
	// Input is the text that failed to parse.
	Input string

	// Reason describes what was wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *DateError) Error() string {
	return fmt.Sprintf("unparseable date %q: %s", e.Input, e.Reason)
}

// ParseDate parses a "day month year" date such as "1 JAN 1900".
// The result is midnight UTC on that day.
func ParseDate(s string) (time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}, &DateError{Input: s, Reason: fmt.Sprintf("expected day, month and year, got %d field(s)", len(fields))}
	}

	day, ok := parseDigits(fields[0], 2)
	if !ok || day < 1 || day > 31 {
		return time.Time{}, &DateError{Input: s, Reason: fmt.Sprintf("invalid day %q", fields[0])}
	}

	month, ok := months[fields[1]]
	if !ok {
		return time.Time{}, &DateError{Input: s, Reason: fmt.Sprintf("unknown month %q", fields[1])}
	}

	year, ok := parseDigits(fields[2], 4)
	if !ok || year < 1 {
		return time.Time{}, &DateError{Input: s, Reason: fmt.Sprintf("invalid year %q", fields[2])}
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, &DateError{Input: s, Reason: fmt.Sprintf("%s %d has no day %d", month, year, day)}
	}
	return t, nil
}

// parseDigits parses an unsigned decimal of at most maxLen digits.
func parseDigits(s string, maxLen int) (int, bool) {
	if s == "" || len(s) > maxLen {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
