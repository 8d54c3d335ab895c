package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/pkg/httpx"
)

type InviteMintHandler struct {
	InviteKeys *service.InviteKeyService
}

type inviteMintRequest struct {
	Uses      int        `json:"uses"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type inviteMintResponse struct {
	// Key is the plaintext invite key, shown exactly once.
	Key       string     `json:"key"`
	ID        string     `json:"id"`
	Uses      int        `json:"uses"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Mint Invite Key Endpoint
//	@Description	Create a new registration invite key with a use budget and optional expiry
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		inviteMintRequest	true	"Mint request"
//	@Success		200		{object}	httpx.Envelope		"key, id, uses, expiresAt"
//	@Failure		400		{object}	httpx.Envelope		"invalid_request"
//	@Failure		403		{object}	httpx.Envelope		"forbidden"
//	@Router			/api/admin/invites [post].
func (h *InviteMintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := inviteMintRequest{Uses: 1}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
			return
		}
	}

	secret, key, err := h.InviteKeys.Mint(ctx, req.Uses, req.ExpiresAt, "")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, inviteMintResponse{
		Key:       secret,
		ID:        key.ID,
		Uses:      key.Uses,
		ExpiresAt: key.ExpiresAt,
	})
}
