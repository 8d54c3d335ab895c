package service

import (
	"regexp"
	"strings"
)

const (
	maxEmailLength     = 254
	minPasswordLength  = 8
	maxPasswordLength  = 128
	maxInviteKeyLength = 256
	maxNameLength      = 80
)

var (
	// Syntactic check only; deliverability is the mail system's problem.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// Conservative name charset: letters (any script), marks, spaces,
	// hyphens, apostrophes, periods.
	namePattern = regexp.MustCompile(`^[\p{L}\p{M}][\p{L}\p{M}' .-]*$`)
)

// NormalizeEmail trims whitespace and lower-cases an email address. All
// storage and comparison happens on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterInput is the raw registration request before validation.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	InviteKey       string
	FirstName       string
	LastName        string
}

// validate checks input shape and returns field-keyed errors. It never
// touches the store; a request that fails here has no side effects.
func (in RegisterInput) validate() *ValidationError {
	fields := make(map[string]string)

	email := NormalizeEmail(in.Email)
	switch {
	case email == "":
		fields["email"] = "email is required"
	case len(email) > maxEmailLength:
		fields["email"] = "email must be at most 254 characters"
	case !emailPattern.MatchString(email):
		fields["email"] = "email is not valid"
	}

	switch {
	case len(in.Password) < minPasswordLength:
		fields["password"] = "password must be at least 8 characters"
	case len(in.Password) > maxPasswordLength:
		fields["password"] = "password must be at most 128 characters"
	case in.Password != in.ConfirmPassword:
		fields["confirmPassword"] = "passwords do not match"
	}

	switch {
	case in.InviteKey == "":
		fields["inviteKey"] = "invite key is required"
	case len(in.InviteKey) > maxInviteKeyLength:
		fields["inviteKey"] = "invite key is not valid"
	}

	if msg := validateName(in.FirstName); msg != "" {
		fields["firstName"] = msg
	}
	if msg := validateName(in.LastName); msg != "" {
		fields["lastName"] = msg
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validateName checks an optional name field. Empty is fine.
func validateName(name string) string {
	if name == "" {
		return ""
	}
	if len(name) > maxNameLength {
		return "name must be at most 80 characters"
	}
	if !namePattern.MatchString(name) {
		return "name contains unsupported characters"
	}
	return ""
}
