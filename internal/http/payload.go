package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/courtside/leagueauth/internal/domain"
	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/pkg/httpx"
	"github.com/courtside/leagueauth/pkg/slogx"
)

// accountPayload is the client-facing account shape. The credential hash
// never leaves the service layer.
type accountPayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// sessionPayload hands the opaque token and its validity window to the client.
type sessionPayload struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type authPayload struct {
	Account accountPayload `json:"account"`
	Session sessionPayload `json:"session"`
}

func toAccountPayload(a domain.Account) accountPayload {
	return accountPayload{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
	}
}

func toAuthPayload(res service.AuthResult) authPayload {
	return authPayload{
		Account: toAccountPayload(res.Account),
		Session: sessionPayload{
			Token:     res.Token,
			ExpiresAt: res.Session.ExpiresAt,
		},
	}
}

// writeServiceError maps the service error taxonomy onto HTTP responses.
// Anything unclassified is logged and reported as a generic 500; internal
// detail never reaches the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	if verr, ok := service.AsValidationError(err); ok {
		httpx.WriteFieldErrors(w, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidInvite):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_invite", service.ErrInvalidInvite.Error())
	case errors.Is(err, service.ErrDuplicateAccount):
		httpx.WriteError(w, http.StatusConflict, "duplicate_account", service.ErrDuplicateAccount.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrInvalidMintRequest):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", service.ErrInvalidMintRequest.Error())
	default:
		log.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "something went wrong")
	}
}
