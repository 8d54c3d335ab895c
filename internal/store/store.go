package store

import (
	"context"
	"errors"
	"time"

	"github.com/courtside/leagueauth/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and let services depend
// only on the tables they touch.
type Store interface {
	InviteKeys() InviteKeys
	Accounts() Accounts
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and rolling
	// back on error. Prefer this over Tx for multi-step writes.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type InviteKeys interface {
	// CreateInviteKey inserts a new key. Uses below zero are clamped to zero.
	// A duplicate key_hash returns ErrAlreadyExists.
	CreateInviteKey(ctx context.Context, key domain.InviteKey) error

	// ConsumeInviteKeyByHash atomically decrements the remaining-uses counter
	// and stamps last_used_at, but only if the key exists, has uses left, and
	// is not expired as of now. It is a single guarded UPDATE so concurrent
	// consumers of the last use cannot both succeed. Returns the post-update
	// row, or ErrNotFound for any miss - absent, exhausted, and expired keys
	// are deliberately indistinguishable.
	ConsumeInviteKeyByHash(ctx context.Context, keyHash string, now time.Time) (domain.InviteKey, error)

	// GetInviteKeyByHash returns a key regardless of usability. Admin/test use.
	GetInviteKeyByHash(ctx context.Context, keyHash string) (domain.InviteKey, error)

	// DeleteDeadInviteKeys removes exhausted and expired keys (housekeeping).
	DeleteDeadInviteKeys(ctx context.Context, now time.Time) error
}

type Accounts interface {
	// CreateAccount inserts a new account (id is app-provided ULID). Inserting
	// a normalized email that already exists returns ErrAlreadyExists; the
	// unique index is what makes concurrent registrations safe, not any
	// pre-check in the application.
	CreateAccount(ctx context.Context, a domain.Account) error

	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail looks up an account by normalized email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)
}

type Sessions interface {
	// CreateSession stores a new session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session by its token fingerprint,
	// whatever its state. Callers decide whether expired/revoked matters.
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)

	// RevokeSessionByTokenHash stamps revoked_at if the session exists and is
	// not already revoked. Revoking a missing or revoked session is a no-op,
	// which makes logout idempotent.
	RevokeSessionByTokenHash(ctx context.Context, tokenHash string, now time.Time) error

	// RevokeAccountSessions revokes every active session for an account.
	RevokeAccountSessions(ctx context.Context, accountID string, now time.Time) error

	// DeleteExpiredSessions removes long-dead session rows (housekeeping).
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}
