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

var ErrInvalidMintRequest = errors.New("invalid invite mint request")

// InviteKeyService mints and consumes registration invite keys. Keys are
// random opaque secrets; only their fingerprint is stored.
type InviteKeyService struct {
	Store store.Store
}

// Mint creates a new invite key with the given use budget and optional
// expiry, returning the plaintext secret exactly once.
func (s *InviteKeyService) Mint(
	ctx context.Context,
	uses int,
	expiresAt *time.Time,
	createdBy string,
) (string, domain.InviteKey, error) {
	log := slogx.FromContext(ctx)

	if uses < 1 {
		log.Warn("attempted to mint invite key without uses", slog.Int("uses", uses))
		return "", domain.InviteKey{}, ErrInvalidMintRequest
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		log.Warn("attempted to mint invite key with past expiry", slog.Time("expires_at", *expiresAt))
		return "", domain.InviteKey{}, ErrInvalidMintRequest
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite key", slog.Any("error", err))
		return "", domain.InviteKey{}, err
	}

	key := domain.InviteKey{
		ID:        idx.New().String(),
		KeyHash:   cryptox.FingerprintToken(secret),
		Uses:      uses,
		ExpiresAt: expiresAt,
		CreatedBy: createdBy,
	}

	if err := s.Store.InviteKeys().CreateInviteKey(ctx, key); err != nil {
		log.Error("failed to create invite key",
			slog.String("invite_key_id", key.ID),
			slog.Any("error", err),
		)
		return "", domain.InviteKey{}, err
	}

	log.Info("invite key minted",
		slog.String("invite_key_id", key.ID),
		slog.Int("uses", uses),
		slog.String("created_by", createdBy),
	)

	return secret, key, nil
}

// Consume fingerprints the plaintext key and atomically spends one use.
// Any miss is ErrInvalidInvite; callers learn nothing about why.
func (s *InviteKeyService) Consume(
	ctx context.Context,
	plainKey string,
	now time.Time,
) (domain.InviteKey, error) {
	log := slogx.FromContext(ctx)

	fingerprint := cryptox.FingerprintToken(plainKey)
	key, err := s.Store.InviteKeys().ConsumeInviteKeyByHash(ctx, fingerprint, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invite key consumption missed")
			return domain.InviteKey{}, ErrInvalidInvite
		}
		log.Error("failed to consume invite key", slog.Any("error", err))
		return domain.InviteKey{}, err
	}

	log.Debug("invite key consumed",
		slog.String("invite_key_id", key.ID),
		slog.Int("remaining_uses", key.Uses),
	)

	return key, nil
}
