package authsdk

import (
	"encoding/json"
	"fmt"
)

// Error codes the server may return. Kept in sync with the service's error
// taxonomy.
const (
	ErrorCodeValidation         = "validation_error"
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidInvite      = "invalid_invite"
	ErrorCodeDuplicateAccount   = "duplicate_account"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthenticated    = "unauthenticated"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeRateLimited        = "rate_limited"
	ErrorCodeServerError        = "server_error"
)

// APIError is a failure envelope from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	// Data carries any structured error detail, e.g. the field map on
	// validation failures.
	Data json.RawMessage
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// FieldErrors returns the field-keyed validation messages, if the error
// carries any.
func (e *APIError) FieldErrors() map[string]string {
	if len(e.Data) == 0 {
		return nil
	}
	var detail struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(e.Data, &detail); err != nil {
		return nil
	}
	return detail.Fields
}
