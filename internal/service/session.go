package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/courtside/leagueauth/internal/domain"
	"github.com/courtside/leagueauth/internal/store"
	"github.com/courtside/leagueauth/pkg/cryptox"
	"github.com/courtside/leagueauth/pkg/idx"
	"github.com/courtside/leagueauth/pkg/slogx"
)

// DefaultSessionTTL is used when no TTL is configured.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionService issues, resolves, and revokes opaque server-side sessions.
// An account may hold any number of concurrent sessions; each is an
// independent row keyed by token fingerprint.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// Issue creates a new session for the account and returns the opaque token.
// The token never touches the database; only its fingerprint is stored.
func (s *SessionService) Issue(
	ctx context.Context,
	accountID string,
) (string, domain.Session, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate session token", slog.Any("error", err))
		return "", domain.Session{}, err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		log.Error("failed to create session",
			slog.String("account_id", accountID),
			slog.Any("error", err),
		)
		return "", domain.Session{}, err
	}

	log.Debug("session issued",
		slog.String("session_id", session.ID),
		slog.String("account_id", accountID),
		slog.Time("expires_at", session.ExpiresAt),
	)

	return token, session, nil
}

// Resolve maps an opaque token to its session, rejecting unknown, expired,
// and revoked sessions with the same ErrSessionInvalid.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrSessionInvalid
	}

	fingerprint := cryptox.FingerprintToken(token)
	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrSessionInvalid
		}
		return domain.Session{}, err
	}

	if !session.Active(time.Now().UTC()) {
		return domain.Session{}, ErrSessionInvalid
	}

	return session, nil
}

// Revoke terminally revokes the session behind the token. Revoking a missing
// or already-revoked session is not an error, so logout is idempotent.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	fingerprint := cryptox.FingerprintToken(token)
	return s.Store.Sessions().RevokeSessionByTokenHash(ctx, fingerprint, time.Now().UTC())
}

// RevokeAll revokes every active session for an account, e.g. after a
// password reset.
func (s *SessionService) RevokeAll(ctx context.Context, accountID string) error {
	return s.Store.Sessions().RevokeAccountSessions(ctx, accountID, time.Now().UTC())
}
