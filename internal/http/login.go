package http

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/pkg/httpx"
)

type LoginHandler struct {
	Registrar *service.RegistrarService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password and start a session
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Login request"
//	@Success		200		{object}	httpx.Envelope	"account, session"
//	@Failure		401		{object}	httpx.Envelope	"invalid_credentials"
//	@Failure		500		{object}	httpx.Envelope	"server_error"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}

	res, err := h.Registrar.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setSessionCookie(w, res.Token, res)
	httpx.WriteData(w, http.StatusOK, toAuthPayload(res))
}
