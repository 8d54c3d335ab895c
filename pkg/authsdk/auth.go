package authsdk

import (
	"context"
	"net/http"
)

// Register creates an account with an invite key and returns an authenticated
// Session along with the full auth response.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Session, *AuthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, nil)
	if err != nil {
		return nil, nil, err
	}

	var auth AuthResponse
	if err := decodeEnvelope(resp, &auth, http.StatusOK); err != nil {
		return nil, nil, err
	}

	return &Session{client: c, token: auth.Session.Token}, &auth, nil
}

// Login authenticates an email/password pair and returns a Session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, *AuthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, nil, err
	}

	var auth AuthResponse
	if err := decodeEnvelope(resp, &auth, http.StatusOK); err != nil {
		return nil, nil, err
	}

	return &Session{client: c, token: auth.Session.Token}, &auth, nil
}

// Me returns the account bound to this session.
func (s *Session) Me(ctx context.Context) (*Account, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Account Account `json:"account"`
	}
	if err := decodeEnvelope(resp, &data, http.StatusOK); err != nil {
		return nil, err
	}
	return &data.Account, nil
}

// Logout revokes this session. Logging out an already-revoked session still
// requires a valid token to pass the auth middleware, so a second call fails
// with 401 rather than succeeding twice.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, nil, http.StatusOK)
}
