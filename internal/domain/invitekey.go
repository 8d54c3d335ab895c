package domain

import "time"

// InviteKey gates registration. The plaintext key is handed out once at mint
// time; only its fingerprint is stored. A key is usable while Uses > 0 and it
// has not passed its optional expiry.
type InviteKey struct {
	ID         string
	KeyHash    string // base64url SHA-256 fingerprint of the secret
	Uses       int    // remaining uses, never negative
	ExpiresAt  *time.Time
	LastUsedAt *time.Time
	CreatedBy  string // account that minted the key, empty for ops-minted keys
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Usable reports whether the key could still be consumed as of now. The store
// enforces the same predicate atomically; this is only for display/logging.
func (k InviteKey) Usable(now time.Time) bool {
	if k.Uses <= 0 {
		return false
	}
	return k.ExpiresAt == nil || k.ExpiresAt.After(now)
}
