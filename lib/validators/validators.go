// Package validators holds the field-level checks shared by the Lambda
// handlers. Failures are returned as bad-request class errors so handlers
// can map them straight to a response.
package validators

import (
	"fmt"
	"regexp"
	"strings"

	"mentorship/lib/apperrors"
	"mentorship/lib/constants"
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

var (
	lowerRegex = regexp.MustCompile(`[a-z]`)
	upperRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex = regexp.MustCompile(`\d`)
)

// ValidateEmail checks the address against the standard email shape.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return apperrors.Wrap(apperrors.ErrBadRequest, "invalid email format")
	}
	return nil
}

// ValidatePassword enforces the pool password policy: at least 8 characters
// with a lowercase letter, an uppercase letter, and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.Wrap(apperrors.ErrBadRequest, "password must be at least 8 characters long")
	}
	if !lowerRegex.MatchString(password) {
		return apperrors.Wrap(apperrors.ErrBadRequest, "password must contain at least one lowercase letter")
	}
	if !upperRegex.MatchString(password) {
		return apperrors.Wrap(apperrors.ErrBadRequest, "password must contain at least one uppercase letter")
	}
	if !digitRegex.MatchString(password) {
		return apperrors.Wrap(apperrors.ErrBadRequest, "password must contain at least one number")
	}
	return nil
}

// ValidateName requires a name of at least 2 characters.
func ValidateName(name string) error {
	if name == "" {
		return apperrors.Wrap(apperrors.ErrBadRequest, "name is required")
	}
	if len(name) < 2 {
		return apperrors.Wrap(apperrors.ErrBadRequest, "name must be at least 2 characters long")
	}
	return nil
}

// NormalizeRole maps any casing of the accepted roles to the canonical
// stored value.
func NormalizeRole(role string) (string, error) {
	switch {
	case strings.EqualFold(role, constants.RoleMentor):
		return constants.RoleMentor, nil
	case strings.EqualFold(role, constants.RoleMentee):
		return constants.RoleMentee, nil
	default:
		return "", apperrors.Wrap(apperrors.ErrBadRequest,
			fmt.Sprintf("invalid role %q; must be either 'Mentor' or 'Mentee'", role))
	}
}

// ValidateObjectKey rejects empty object keys. An empty key is a
// not-found class failure, matching the object store's own semantics.
func ValidateObjectKey(key string) error {
	if key == "" {
		return apperrors.Wrap(apperrors.ErrNotFound, "no such key")
	}
	return nil
}

// ValidateRegistration runs every registration field check and returns the
// normalized role on success.
func ValidateRegistration(name, email, password, role string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	return NormalizeRole(role)
}
