package validate

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,18}$`)
)

func Email(value string) bool {
	return emailPattern.MatchString(strings.TrimSpace(value))
}

// Phone accepts digits with an optional leading plus and common separators.
// Empty is fine: the profile forms treat phone as optional.
func Phone(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	return phonePattern.MatchString(value)
}

func MinLen(value string, n int) bool {
	return len(strings.TrimSpace(value)) >= n
}

func InRange(n, lo, hi int) bool {
	return n >= lo && n <= hi
}
