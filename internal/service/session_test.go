package service

import (
	"context"
	"testing"
	"time"

	"github.com/courtside/leagueauth/internal/domain"
	"github.com/courtside/leagueauth/internal/store"
	"github.com/courtside/leagueauth/internal/store/drivers/sqlite"
	"github.com/courtside/leagueauth/pkg/cryptox"
	"github.com/courtside/leagueauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T, ttl time.Duration) (*SessionService, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &SessionService{Store: st, TTL: ttl}, st
}

func createAccount(t *testing.T, st store.Store) domain.Account {
	t.Helper()

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        "player@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), account))
	return account
}

func TestIssueAndResolve(t *testing.T) {
	s, st := newSessionService(t, time.Hour)
	ctx := context.Background()
	account := createAccount(t, st)

	token, session, err := s.Issue(ctx, account.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, account.ID, session.AccountID)
	require.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

	resolved, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, session.ID, resolved.ID)

	// The raw token is never stored
	_, err = st.Sessions().GetSessionByTokenHash(ctx, token)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolve_Invalid(t *testing.T) {
	s, st := newSessionService(t, time.Hour)
	ctx := context.Background()
	account := createAccount(t, st)

	t.Run("empty token", func(t *testing.T) {
		_, err := s.Resolve(ctx, "")
		require.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := s.Resolve(ctx, "never-issued")
		require.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("revoked token", func(t *testing.T) {
		token, _, err := s.Issue(ctx, account.ID)
		require.NoError(t, err)
		require.NoError(t, s.Revoke(ctx, token))

		_, err = s.Resolve(ctx, token)
		require.ErrorIs(t, err, ErrSessionInvalid)
	})
}

func TestResolve_Expired(t *testing.T) {
	s, st := newSessionService(t, time.Hour)
	ctx := context.Background()
	account := createAccount(t, st)

	// Plant an already-expired session row for a known token
	token := "expired-token"
	require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		AccountID: account.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}))

	_, err := s.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrSessionInvalid)
}

func TestRevoke_Idempotent(t *testing.T) {
	s, st := newSessionService(t, time.Hour)
	ctx := context.Background()
	account := createAccount(t, st)

	token, _, err := s.Issue(ctx, account.ID)
	require.NoError(t, err)

	// First revoke kills the session
	require.NoError(t, s.Revoke(ctx, token))
	_, err = s.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrSessionInvalid)

	// Repeated revokes, and revokes of garbage, still succeed
	require.NoError(t, s.Revoke(ctx, token))
	require.NoError(t, s.Revoke(ctx, "never-issued"))
	require.NoError(t, s.Revoke(ctx, ""))
}

func TestRevokeAll(t *testing.T) {
	s, st := newSessionService(t, time.Hour)
	ctx := context.Background()
	account := createAccount(t, st)

	tokenA, _, err := s.Issue(ctx, account.ID)
	require.NoError(t, err)
	tokenB, _, err := s.Issue(ctx, account.ID)
	require.NoError(t, err)

	require.NoError(t, s.RevokeAll(ctx, account.ID))

	_, err = s.Resolve(ctx, tokenA)
	require.ErrorIs(t, err, ErrSessionInvalid)
	_, err = s.Resolve(ctx, tokenB)
	require.ErrorIs(t, err, ErrSessionInvalid)
}

func TestDefaultTTL(t *testing.T) {
	s, st := newSessionService(t, 0)
	ctx := context.Background()
	account := createAccount(t, st)

	_, session, err := s.Issue(ctx, account.ID)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(DefaultSessionTTL), session.ExpiresAt, 5*time.Second)
}
