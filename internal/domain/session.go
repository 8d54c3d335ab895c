package domain

import "time"

// Session is a server-side session record. The opaque token lives only with
// the client; the row stores its fingerprint. Revocation is terminal.
type Session struct {
	ID        string
	TokenHash string // base64url SHA-256 fingerprint of the opaque token
	AccountID string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session is neither revoked nor expired as of now.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
