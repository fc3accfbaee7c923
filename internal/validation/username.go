// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{3,30}$`)

// Route words and product pages a profile must not shadow.
var reservedUsernames = map[string]struct{}{
	"admin":     {},
	"api":       {},
	"auth":      {},
	"analytics": {},
	"dashboard": {},
	"health":    {},
	"links":     {},
	"login":     {},
	"logout":    {},
	"metrics":   {},
	"p":         {},
	"privacy":   {},
	"profile":   {},
	"settings":  {},
	"signup":    {},
	"swagger":   {},
	"terms":     {},
	"users":     {},
	"ws":        {},
}

// ValidateUsername checks the public username format: 3-30 characters,
// letters, digits, underscore and hyphen only.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-30 characters and contain only letters, numbers, underscores, and hyphens")
	}

	if _, exists := reservedUsernames[username]; exists {
		return fmt.Errorf("username is reserved")
	}

	return nil
}
