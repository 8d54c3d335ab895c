package authsdk

import "time"

// Account is the client-facing account shape.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionInfo is the session portion of an auth response.
type SessionInfo struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthResponse is the body of a successful register or login.
type AuthResponse struct {
	Account Account     `json:"account"`
	Session SessionInfo `json:"session"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	InviteKey       string `json:"inviteKey"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MintInviteRequest asks for a new invite key.
type MintInviteRequest struct {
	Uses      int        `json:"uses,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// MintInviteResponse carries the plaintext invite key, shown exactly once.
type MintInviteResponse struct {
	Key       string     `json:"key"`
	ID        string     `json:"id"`
	Uses      int        `json:"uses"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// HealthResponse is the body of the /livez and /readyz probes. Health probes
// are not wrapped in the response envelope.
type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}
