package parser

import (
	"errors"
	"fmt"
	"time"
)

var (
	errDateEmpty    = errors.New("date string is empty")
	errDateLength   = errors.New("date string is not 8 characters")
	errDateNonDigit = errors.New("date string contains non-digit characters")
)

// parseCompactDate parses the upstream's fixed YYYYMMDD date form. Shape is
// checked before time.Parse so the diagnostics can say what was wrong.
func parseCompactDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errDateEmpty
	}
	if len(s) != 8 {
		return time.Time{}, errDateLength
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return time.Time{}, errDateNonDigit
		}
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date: %w", err)
	}
	return t, nil
}
