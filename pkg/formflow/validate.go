package formflow

import (
	"regexp"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(\d{4})?$`)
)

// Email accepts a syntactic local@domain.tld address.
func Email(v string) bool {
	return emailPattern.MatchString(v)
}

// Phone accepts any input carrying at least 10 digits once formatting is stripped.
func Phone(v string) bool {
	digits := 0
	for _, r := range v {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

// ZipCode accepts exactly 5 or 9 digits.
func ZipCode(v string) bool {
	return zipPattern.MatchString(v)
}

func MinLength(n int) func(string) bool {
	return func(v string) bool {
		return utf8.RuneCountInString(v) >= n
	}
}
