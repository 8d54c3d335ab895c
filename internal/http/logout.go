package http

import (
	"net/http"

	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/pkg/httpx"
	"github.com/courtside/leagueauth/pkg/slogx"
)

type LogoutHandler struct {
	Sessions *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revoke the current session and clear the session cookie
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"loggedOut"
//	@Failure		401	{object}	httpx.Envelope	"unauthenticated"
//	@Failure		500	{object}	httpx.Envelope	"server_error"
//	@Router			/api/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// RequireSession put the presented token here; revoking it again after a
	// concurrent logout is still a success.
	token, _ := httpx.SessionTokenFromContext(ctx)
	if err := h.Sessions.Revoke(ctx, token); err != nil {
		log.Error("failed to revoke session", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "something went wrong")
		return
	}

	clearSessionCookie(w)
	httpx.WriteData(w, http.StatusOK, map[string]bool{"loggedOut": true})
}
