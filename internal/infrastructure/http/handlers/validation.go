package handlers

import "strings"

// Validation limits.
const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxPasswordLength = 128
)

// SanitizeUsername trims the username; returns empty if over max length.
func SanitizeUsername(username string) string {
	s := strings.TrimSpace(username)
	if len(s) > MaxUsernameLength {
		return ""
	}
	return s
}

// SanitizeEmail trims and lowercases email; returns empty if invalid length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizePassword trims password; returns empty if over max length.
func SanitizePassword(password string) string {
	s := strings.TrimSpace(password)
	if len(s) > MaxPasswordLength {
		return ""
	}
	return s
}
