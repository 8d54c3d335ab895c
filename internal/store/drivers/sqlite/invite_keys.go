package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/courtside/leagueauth/internal/domain"
)

type inviteKeysRepo struct {
	db dbtx
}

func (r *inviteKeysRepo) CreateInviteKey(ctx context.Context, key domain.InviteKey) error {
	now := time.Now().UTC()
	if key.CreatedAt.IsZero() {
		key.CreatedAt = now
	}
	if key.UpdatedAt.IsZero() {
		key.UpdatedAt = now
	}
	uses := max(key.Uses, 0)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invite_keys (id, key_hash, uses, expires_at, last_used_at, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key.ID,
		key.KeyHash,
		uses,
		mapOptionalTime(key.ExpiresAt),
		mapOptionalTime(key.LastUsedAt),
		mapStringNull(key.CreatedBy),
		key.CreatedAt,
		key.UpdatedAt,
	)
	return mapConstraint(err)
}

// ConsumeInviteKeyByHash is the one statement in the service that must be
// atomic beyond a plain write: the WHERE guard and the decrement happen in a
// single UPDATE, so two registrations racing on the last remaining use cannot
// both pass, and uses can never go below zero. A miss on any ground (absent,
// exhausted, expired) is the same ErrNotFound.
func (r *inviteKeysRepo) ConsumeInviteKeyByHash(
	ctx context.Context,
	keyHash string,
	now time.Time,
) (domain.InviteKey, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE invite_keys
		SET uses = uses - 1, last_used_at = ?, updated_at = ?
		WHERE key_hash = ?
		  AND uses > 0
		  AND (expires_at IS NULL OR expires_at > ?)
		RETURNING id, key_hash, uses, expires_at, last_used_at, created_by, created_at, updated_at`,
		now.UTC(), now.UTC(), keyHash, now.UTC(),
	)

	key, err := scanInviteKey(row)
	if err != nil {
		return domain.InviteKey{}, mapNotFound(err)
	}
	return key, nil
}

func (r *inviteKeysRepo) GetInviteKeyByHash(
	ctx context.Context,
	keyHash string,
) (domain.InviteKey, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, key_hash, uses, expires_at, last_used_at, created_by, created_at, updated_at
		FROM invite_keys
		WHERE key_hash = ?`,
		keyHash,
	)

	key, err := scanInviteKey(row)
	if err != nil {
		return domain.InviteKey{}, mapNotFound(err)
	}
	return key, nil
}

func (r *inviteKeysRepo) DeleteDeadInviteKeys(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM invite_keys
		WHERE uses <= 0 OR (expires_at IS NOT NULL AND expires_at <= ?)`,
		now.UTC(),
	)
	return err
}

func scanInviteKey(row *sql.Row) (domain.InviteKey, error) {
	var (
		key        domain.InviteKey
		expiresAt  sql.NullTime
		lastUsedAt sql.NullTime
		createdBy  sql.NullString
	)
	err := row.Scan(
		&key.ID,
		&key.KeyHash,
		&key.Uses,
		&expiresAt,
		&lastUsedAt,
		&createdBy,
		&key.CreatedAt,
		&key.UpdatedAt,
	)
	if err != nil {
		return domain.InviteKey{}, err
	}

	key.ExpiresAt = mapNullTimePtr(expiresAt)
	key.LastUsedAt = mapNullTimePtr(lastUsedAt)
	key.CreatedBy = mapNullString(createdBy)
	return key, nil
}
