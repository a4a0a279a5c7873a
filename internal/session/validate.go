package session

import (
	"regexp"
	"strings"

	"github.com/me/skywarn/pkg/model"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateEmail rejects syntactically malformed addresses before any
// network dispatch.
func validateEmail(op, email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return model.NewValidationError(op, "Please enter a valid email address")
	}
	return nil
}

// validateNewPassword enforces the registration password policy.
func validateNewPassword(op, password, confirm string) error {
	if len(password) < minPasswordLength {
		return model.NewValidationError(op, "Password must be at least 6 characters")
	}
	if password != confirm {
		return model.NewValidationError(op, "Passwords do not match")
	}
	return nil
}
