package utils

import (
	"strings"
	"unicode"
)

// NormalizeString trims whitespace from string input
func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

// NormalizePhone strips everything but digits and a leading +. Used for
// format validation only; stored phone numbers keep their punctuation.
func NormalizePhone(phone string) string {
	cleaned := strings.TrimSpace(phone)
	if cleaned == "" {
		return ""
	}

	var result strings.Builder
	for i, r := range cleaned {
		if i == 0 && r == '+' {
			result.WriteRune(r)
		} else if unicode.IsDigit(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// IsValidPhone performs basic phone validation
func IsValidPhone(phone string) bool {
	normalized := NormalizePhone(phone)
	if len(normalized) < 7 {
		return false
	}

	first := rune(normalized[0])
	return first == '+' || unicode.IsDigit(first)
}
