package authsdk

import (
	"context"
	"net/http"
)

// MintInvite creates a new registration invite key. Requires AdminToken to be
// set on the client.
func (c *SDKClient) MintInvite(ctx context.Context, req MintInviteRequest) (*MintInviteResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/admin/invites", req, map[string]string{
		"X-Admin-Token": c.AdminToken,
	})
	if err != nil {
		return nil, err
	}

	var mint MintInviteResponse
	if err := decodeEnvelope(resp, &mint, http.StatusOK); err != nil {
		return nil, err
	}
	return &mint, nil
}
