package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/courtside/leagueauth/internal/domain"
)

type accountsRepo struct {
	db dbtx
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password_hash, first_name, last_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.Email,
		a.PasswordHash,
		mapStringNull(a.FirstName),
		mapStringNull(a.LastName),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return r.getAccount(ctx, `WHERE id = ?`, id)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.getAccount(ctx, `WHERE email = ?`, email)
}

func (r *accountsRepo) getAccount(ctx context.Context, where string, arg any) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
		FROM accounts `+where,
		arg,
	)

	var (
		a         domain.Account
		firstName sql.NullString
		lastName  sql.NullString
	)
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&firstName,
		&lastName,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.FirstName = mapNullString(firstName)
	a.LastName = mapNullString(lastName)
	return a, nil
}
