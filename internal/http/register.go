package http

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/pkg/httpx"
)

type RegisterHandler struct {
	Registrar *service.RegistrarService
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	InviteKey       string `json:"inviteKey"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// ServeHTTP godoc
//
//	@Summary		Register Account Endpoint
//	@Description	Create a new account using a valid invite key and start a session
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Registration request"
//	@Success		200		{object}	httpx.Envelope	"account, session"
//	@Failure		400		{object}	httpx.Envelope	"validation_error, invalid_invite"
//	@Failure		409		{object}	httpx.Envelope	"duplicate_account"
//	@Failure		500		{object}	httpx.Envelope	"server_error"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}

	res, err := h.Registrar.Register(ctx, service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		InviteKey:       req.InviteKey,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setSessionCookie(w, res.Token, res)
	httpx.WriteData(w, http.StatusOK, toAuthPayload(res))
}
