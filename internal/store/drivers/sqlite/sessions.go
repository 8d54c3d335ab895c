package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/courtside/leagueauth/internal/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token_hash, account_id, created_at, expires_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.TokenHash,
		s.AccountID,
		s.CreatedAt,
		s.ExpiresAt,
		mapOptionalTime(s.RevokedAt),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByTokenHash(
	ctx context.Context,
	tokenHash string,
) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, token_hash, account_id, created_at, expires_at, revoked_at
		FROM sessions
		WHERE token_hash = ?`,
		tokenHash,
	)

	var (
		s         domain.Session
		revokedAt sql.NullTime
	)
	err := row.Scan(
		&s.ID,
		&s.TokenHash,
		&s.AccountID,
		&s.CreatedAt,
		&s.ExpiresAt,
		&revokedAt,
	)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	s.RevokedAt = mapNullTimePtr(revokedAt)
	return s, nil
}

// RevokeSessionByTokenHash stamps revoked_at only if not already set, so
// revocation is terminal and repeated revokes are harmless no-ops.
func (r *sessionsRepo) RevokeSessionByTokenHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET revoked_at = ?
		WHERE token_hash = ? AND revoked_at IS NULL`,
		now.UTC(), tokenHash,
	)
	return err
}

func (r *sessionsRepo) RevokeAccountSessions(
	ctx context.Context,
	accountID string,
	now time.Time,
) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET revoked_at = ?
		WHERE account_id = ? AND revoked_at IS NULL`,
		now.UTC(), accountID,
	)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE expires_at <= ? OR revoked_at IS NOT NULL`,
		now.UTC(),
	)
	return err
}
