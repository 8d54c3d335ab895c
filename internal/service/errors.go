package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidInvite covers absent, exhausted, and expired invite keys. The
	// three cases are deliberately indistinguishable so callers cannot probe
	// key validity.
	ErrInvalidInvite = errors.New("invalid or expired invite key")

	// ErrDuplicateAccount reports that the normalized email is already
	// registered.
	ErrDuplicateAccount = errors.New("an account with this email already exists")

	// ErrInvalidCredentials is the single answer to any failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionInvalid covers unknown, expired, and revoked sessions.
	ErrSessionInvalid = errors.New("session is invalid")
)

// ValidationError reports malformed input as field-keyed messages. It is
// always produced before any mutation touches the store.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// AsValidationError unwraps err into a *ValidationError, if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
