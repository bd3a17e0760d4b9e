package types

import (
	"regexp"
	"strings"
)

func IsValidEmail(email string) bool {
	if email == "" || !emailRegex.MatchString(email) {
		return false
	}
	return true
}

// NormalizeEmail lowercases and trims an address before lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
