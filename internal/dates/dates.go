// Package dates parses the date arguments accepted by search flags.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD form.
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValid checks if s is a valid YYYY-MM-DD date.
func IsValid(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Parse parses a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValid(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q (expected YYYY-MM-DD)", s)
	}
	return time.Parse(DateLayout, s)
}

// ParseOptional parses s unless it is empty, returning nil for the open
// bound case.
func ParseOptional(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
