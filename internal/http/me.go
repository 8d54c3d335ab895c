package http

import (
	"net/http"

	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/pkg/httpx"
	"github.com/courtside/leagueauth/pkg/slogx"
)

type MeHandler struct {
	Registrar *service.RegistrarService
}

// ServeHTTP godoc
//
//	@Summary		Current Account Endpoint
//	@Description	Return the account bound to the presented session
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"account"
//	@Failure		401	{object}	httpx.Envelope	"unauthenticated"
//	@Failure		500	{object}	httpx.Envelope	"server_error"
//	@Router			/api/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	account, err := h.Registrar.GetAccountByID(ctx, accountID)
	if err != nil {
		log.Error("failed to fetch account", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "something went wrong")
		return
	}

	httpx.WriteData(w, http.StatusOK, map[string]any{"account": toAccountPayload(account)})
}
