package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/courtside/leagueauth/internal/domain"
	"github.com/courtside/leagueauth/internal/store"
	"github.com/courtside/leagueauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// newFileStore opens a file-backed store in WAL mode, matching the production
// DSN. The concurrency tests need it: each connection to a ":memory:" DSN gets
// its own database.
func newFileStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		filepath.Join(t.TempDir(), "test.db"))
	st, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedAccount(t *testing.T, st *Store, email string) domain.Account {
	t.Helper()

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), account))
	return account
}

func TestPing(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Ping(context.Background()))
}

func TestWithTx_CommitsOnNil(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	var id string
	err := st.WithTx(ctx, func(tx store.Tx) error {
		account := domain.Account{
			ID:           idx.New().String(),
			Email:        "tx@example.com",
			PasswordHash: "hash",
		}
		id = account.ID
		return tx.Accounts().CreateAccount(ctx, account)
	})
	require.NoError(t, err)

	got, err := st.Accounts().GetAccountByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "tx@example.com", got.Email)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	var id string
	err := st.WithTx(ctx, func(tx store.Tx) error {
		account := domain.Account{
			ID:           idx.New().String(),
			Email:        "rollback@example.com",
			PasswordHash: "hash",
		}
		id = account.ID
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	_, err = st.Accounts().GetAccountByID(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}
