package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the leagueauth service. It provides access to
// unauthenticated operations and creates authenticated Sessions on register
// or login.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// AdminToken, when set, is sent as X-Admin-Token on administrative
	// operations such as invite minting.
	AdminToken string
}

// NewSDKClient creates a new leagueauth client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session is an authenticated handle on the service. The token is the opaque
// session secret issued at register/login time.
type Session struct {
	client *SDKClient
	token  string
}

// Token exposes the opaque session token, e.g. for storing it client-side.
func (s *Session) Token() string { return s.token }

// NewSessionFromToken rebuilds a Session from a previously stored token.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs a request with an optional JSON body and optional headers.
func (c *SDKClient) doJSON(
	ctx context.Context,
	method, path string,
	body any,
	headers map[string]string,
) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// doAuthJSON is doJSON with the session's Bearer token attached.
func (s *Session) doAuthJSON(
	ctx context.Context,
	method, path string,
	body any,
) (*http.Response, error) {
	return s.client.doJSON(ctx, method, path, body, map[string]string{
		"Authorization": "Bearer " + s.token,
	})
}

// envelope mirrors the server's uniform response body.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// decodeEnvelope unwraps the response envelope into target. A non-expected
// status or a failure envelope becomes a typed *APIError.
func decodeEnvelope(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != expectedStatus || !env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Error,
			Data:       env.Data,
		}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
