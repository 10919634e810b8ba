// Package validate holds the pure input validation rules for account forms.
//
// Each function returns "" when the input is valid, or a human-readable
// message when it is not — the message itself IS the validation result.
// This mirrors how the app's forms consume validation: an empty string
// means "no error to display under the field".
//
// These functions do no I/O and carry no state, so they take no context
// and return no error. The service layer converts a non-empty message
// into an apperror.ValidationFailed for the API surface.
package validate

import "regexp"

// emailPattern is deliberately loose: one "@", no whitespace, and a dot in
// the domain part. Real email validation is a rabbit hole — the authority
// on whether an address works is the mail server, not a regex.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	MinPasswordLength = 6
	MinNameLength     = 2
)

// Email validates an email address for registration and login forms.
func Email(email string) string {
	if email == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}

// Password validates a password against the minimum-length rule.
func Password(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len(password) < MinPasswordLength {
		return "Password must be at least 6 characters"
	}
	return ""
}

// Name validates a display name.
func Name(name string) string {
	if name == "" {
		return "Name is required"
	}
	if len(name) < MinNameLength {
		return "Name must be at least 2 characters"
	}
	return ""
}
