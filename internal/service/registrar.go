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

// RegistrarService creates accounts through invite-gated registration and
// authenticates returning users.
type RegistrarService struct {
	Store    store.Store
	Hasher   cryptox.Hasher
	Invites  *InviteKeyService
	Sessions *SessionService
}

// AuthResult is what register and login hand back to the transport layer:
// the account, with its credential hash zeroed, plus the opaque session token
// the client should hold.
type AuthResult struct {
	Account domain.Account
	Token   string
	Session domain.Session
}

// Register validates the request, spends one invite-key use, creates the
// account, and issues a session. It performs the following steps:
//  1. Validates input shape; no store access on failure
//  2. Fingerprints the invite key and atomically consumes one use
//  3. Hashes the password with Argon2id
//  4. Inserts the account; the unique email index is the duplicate arbiter
//  5. Issues a session for the new account
//
// The invite use spent in step 2 is not refunded when step 4 loses a
// duplicate-email race; coupling them would mean holding a write transaction
// across the deliberately slow password hash. A lost race costs one use.
func (s *RegistrarService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input shape before any mutation.
	if verr := in.validate(); verr != nil {
		log.Warn("registration rejected by validation")
		return AuthResult{}, verr
	}
	email := NormalizeEmail(in.Email)

	// 2. Spend one invite-key use. Absent/exhausted/expired all surface as
	// the same ErrInvalidInvite.
	key, err := s.Invites.Consume(ctx, in.InviteKey, time.Now().UTC())
	if err != nil {
		return AuthResult{}, err
	}

	// 3. Hash the password.
	passwordHash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return AuthResult{}, err
	}

	// 4. Insert the account. Concurrent registrations with the same
	// normalized email are settled by the unique index, not a pre-check.
	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("registration attempted with already-registered email",
				slog.String("invite_key_id", key.ID),
			)
			return AuthResult{}, ErrDuplicateAccount
		}
		log.Error("failed to create account", slog.Any("error", err))
		return AuthResult{}, err
	}

	// 5. Issue a session for the new account.
	token, session, err := s.Sessions.Issue(ctx, account.ID)
	if err != nil {
		return AuthResult{}, err
	}

	log.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("invite_key_id", key.ID),
		slog.Int("invite_uses_left", key.Uses),
	)

	account.PasswordHash = ""
	return AuthResult{Account: account, Token: token, Session: session}, nil
}

// Login authenticates an email/password pair and issues a fresh session.
// Unknown email and wrong password collapse into ErrInvalidCredentials.
func (s *RegistrarService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempted with unknown email")
			return AuthResult{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return AuthResult{}, err
	}

	if err := s.Hasher.Verify(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login attempted with wrong password",
				slog.String("account_id", account.ID),
			)
			return AuthResult{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return AuthResult{}, err
	}

	token, session, err := s.Sessions.Issue(ctx, account.ID)
	if err != nil {
		return AuthResult{}, err
	}

	log.Info("account logged in", slog.String("account_id", account.ID))

	account.PasswordHash = ""
	return AuthResult{Account: account, Token: token, Session: session}, nil
}

// GetAccountByID fetches an account by id.
func (s *RegistrarService) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return s.Store.Accounts().GetAccountByID(ctx, id)
}
