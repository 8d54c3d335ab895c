package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/internal/store/drivers/sqlite"
	"github.com/courtside/leagueauth/pkg/cryptox"
	"github.com/courtside/leagueauth/pkg/httpx"
	"github.com/stretchr/testify/require"
)

const testAdminToken = "test-admin-token"

// newTestRouter wires a router against a fresh in-memory store, the same way
// the application does at startup. Rate limits are relaxed so tests can make
// rapid requests.
func newTestRouter(t *testing.T) *Router {
	t.Helper()

	relaxed := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	origStrict, origModerate := httpx.StrictLimit, httpx.ModerateLimit
	httpx.StrictLimit, httpx.ModerateLimit = relaxed, relaxed
	t.Cleanup(func() {
		httpx.StrictLimit, httpx.ModerateLimit = origStrict, origModerate
	})

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sessions := &service.SessionService{Store: st, TTL: time.Hour}
	invites := &service.InviteKeyService{Store: st}

	router := NewRouter("test", testAdminToken, st, slog.Default())
	router.Registrar = &service.RegistrarService{
		Store:    st,
		Hasher:   cryptox.Hasher{Pepper: "test-pepper"},
		Invites:  invites,
		Sessions: sessions,
	}
	router.SessionService = sessions
	router.InviteKeys = invites
	router.ApplyRoutes()

	return router
}

type testResponse struct {
	rec *httptest.ResponseRecorder
	env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
		Code    string          `json:"code"`
	}
}

func doJSON(t *testing.T, router *Router, method, path string, body any, mutate func(*http.Request)) testResponse {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(req)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	resp := testResponse{rec: rec}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp.env))
	return resp
}

// mintInvite mints an invite key through the admin endpoint.
func mintInvite(t *testing.T, router *Router, uses int) string {
	t.Helper()

	resp := doJSON(t, router, http.MethodPost, "/api/admin/invites",
		map[string]any{"uses": uses},
		func(r *http.Request) { r.Header.Set("X-Admin-Token", testAdminToken) },
	)
	require.Equal(t, http.StatusOK, resp.rec.Code)

	var mint struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(resp.env.Data, &mint))
	require.NotEmpty(t, mint.Key)
	return mint.Key
}

func registerBody(email, inviteKey string) map[string]any {
	return map[string]any{
		"email":           email,
		"password":        "correct horse battery",
		"confirmPassword": "correct horse battery",
		"inviteKey":       inviteKey,
		"firstName":       "Sam",
		"lastName":        "Rivera",
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", SessionCookieName)
	return nil
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)
	key := mintInvite(t, router, 1)

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register",
		registerBody("new@example.com", key), nil)

	require.Equal(t, http.StatusOK, resp.rec.Code)
	require.True(t, resp.env.Success)

	var auth struct {
		Account struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"account"`
		Session struct {
			Token     string    `json:"token"`
			ExpiresAt time.Time `json:"expiresAt"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(resp.env.Data, &auth))
	require.NotEmpty(t, auth.Account.ID)
	require.Equal(t, "new@example.com", auth.Account.Email)
	require.NotEmpty(t, auth.Session.Token)
	require.True(t, auth.Session.ExpiresAt.After(time.Now()))

	cookie := sessionCookie(t, resp.rec)
	require.Equal(t, auth.Session.Token, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	// Sensitive responses must not be cacheable
	require.Equal(t, "no-store", resp.rec.Header().Get("Cache-Control"))
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	router := newTestRouter(t)

	body := registerBody("not-an-email", "whatever")
	body["password"] = "short"
	body["confirmPassword"] = "short"

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register", body, nil)

	require.Equal(t, http.StatusBadRequest, resp.rec.Code)
	require.False(t, resp.env.Success)
	require.Equal(t, "validation_error", resp.env.Code)

	var detail struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(resp.env.Data, &detail))
	require.Contains(t, detail.Fields, "email")
	require.Contains(t, detail.Fields, "password")
}

func TestRegisterEndpoint_InvalidInvite(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/auth/register",
		registerBody("new@example.com", "bogus-invite-key"), nil)

	require.Equal(t, http.StatusBadRequest, resp.rec.Code)
	require.Equal(t, "invalid_invite", resp.env.Code)
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	key := mintInvite(t, router, 2)

	first := doJSON(t, router, http.MethodPost, "/api/auth/register",
		registerBody("dup@example.com", key), nil)
	require.Equal(t, http.StatusOK, first.rec.Code)

	second := doJSON(t, router, http.MethodPost, "/api/auth/register",
		registerBody("DUP@example.com", key), nil)
	require.Equal(t, http.StatusConflict, second.rec.Code)
	require.Equal(t, "duplicate_account", second.env.Code)
}

func TestRegisterEndpoint_BadJSON(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)
	key := mintInvite(t, router, 1)

	registered := doJSON(t, router, http.MethodPost, "/api/auth/register",
		registerBody("login@example.com", key), nil)
	require.Equal(t, http.StatusOK, registered.rec.Code)

	t.Run("correct credentials", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "login@example.com", "password": "correct horse battery"}, nil)
		require.Equal(t, http.StatusOK, resp.rec.Code)
		require.True(t, resp.env.Success)
		sessionCookie(t, resp.rec)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "login@example.com", "password": "wrong"}, nil)
		require.Equal(t, http.StatusUnauthorized, resp.rec.Code)
		require.Equal(t, "invalid_credentials", resp.env.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "ghost@example.com", "password": "correct horse battery"}, nil)
		require.Equal(t, http.StatusUnauthorized, resp.rec.Code)
		require.Equal(t, "invalid_credentials", resp.env.Code)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	router := newTestRouter(t)
	key := mintInvite(t, router, 1)

	registered := doJSON(t, router, http.MethodPost, "/api/auth/register",
		registerBody("logout@example.com", key), nil)
	require.Equal(t, http.StatusOK, registered.rec.Code)
	token := sessionCookie(t, registered.rec).Value

	withCookie := func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}

	t.Run("revokes and clears cookie", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, withCookie)
		require.Equal(t, http.StatusOK, resp.rec.Code)
		require.True(t, resp.env.Success)

		cleared := sessionCookie(t, resp.rec)
		require.Empty(t, cleared.Value)
		require.Negative(t, cleared.MaxAge)
	})

	t.Run("replaying the revoked token is unauthenticated", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, withCookie)
		require.Equal(t, http.StatusUnauthorized, resp.rec.Code)
		require.Equal(t, "unauthenticated", resp.env.Code)
	})

	t.Run("no token is unauthenticated", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.rec.Code)
	})
}

func TestMeEndpoint(t *testing.T) {
	router := newTestRouter(t)
	key := mintInvite(t, router, 1)

	registered := doJSON(t, router, http.MethodPost, "/api/auth/register",
		registerBody("me@example.com", key), nil)
	require.Equal(t, http.StatusOK, registered.rec.Code)
	token := sessionCookie(t, registered.rec).Value

	t.Run("bearer token", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodGet, "/api/auth/me", nil, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		require.Equal(t, http.StatusOK, resp.rec.Code)

		var data struct {
			Account struct {
				Email string `json:"email"`
			} `json:"account"`
		}
		require.NoError(t, json.Unmarshal(resp.env.Data, &data))
		require.Equal(t, "me@example.com", data.Account.Email)
	})

	t.Run("session cookie", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodGet, "/api/auth/me", nil, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		})
		require.Equal(t, http.StatusOK, resp.rec.Code)
	})

	t.Run("no credentials", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodGet, "/api/auth/me", nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.rec.Code)
		require.Equal(t, "unauthenticated", resp.env.Code)
	})

	t.Run("garbage bearer token", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodGet, "/api/auth/me", nil, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer garbage")
		})
		require.Equal(t, http.StatusUnauthorized, resp.rec.Code)
	})
}

func TestInviteMintEndpoint_AdminGate(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		router := newTestRouter(t)
		resp := doJSON(t, router, http.MethodPost, "/api/admin/invites", nil, nil)
		require.Equal(t, http.StatusForbidden, resp.rec.Code)
		require.Equal(t, "forbidden", resp.env.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		router := newTestRouter(t)
		resp := doJSON(t, router, http.MethodPost, "/api/admin/invites", nil, func(r *http.Request) {
			r.Header.Set("X-Admin-Token", "wrong")
		})
		require.Equal(t, http.StatusForbidden, resp.rec.Code)
	})

	t.Run("invalid uses", func(t *testing.T) {
		router := newTestRouter(t)
		resp := doJSON(t, router, http.MethodPost, "/api/admin/invites",
			map[string]any{"uses": 0},
			func(r *http.Request) { r.Header.Set("X-Admin-Token", testAdminToken) },
		)
		require.Equal(t, http.StatusBadRequest, resp.rec.Code)
		require.Equal(t, "invalid_request", resp.env.Code)
	})

	t.Run("empty body defaults to one use", func(t *testing.T) {
		router := newTestRouter(t)
		resp := doJSON(t, router, http.MethodPost, "/api/admin/invites", nil,
			func(r *http.Request) { r.Header.Set("X-Admin-Token", testAdminToken) },
		)
		require.Equal(t, http.StatusOK, resp.rec.Code)

		var mint struct {
			Uses int `json:"uses"`
		}
		require.NoError(t, json.Unmarshal(resp.env.Data, &mint))
		require.Equal(t, 1, mint.Uses)
	})
}

func TestAdminEndpointsDisabledWithoutToken(t *testing.T) {
	router := newTestRouter(t)
	router.adminToken = ""

	// Routes capture the token at ApplyRoutes time, so rebuild them
	router.Mux = http.NewServeMux()
	router.ApplyRoutes()

	resp := doJSON(t, router, http.MethodPost, "/api/admin/invites", nil, func(r *http.Request) {
		r.Header.Set("X-Admin-Token", "")
	})
	require.Equal(t, http.StatusForbidden, resp.rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("livez", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var health healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		require.Equal(t, "ok", health.Status)
		require.Equal(t, "test", health.Version)
	})

	t.Run("readyz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimit_Register(t *testing.T) {
	// This test uses the default strict profile, so it gets its own router
	// with limits restored.
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sessions := &service.SessionService{Store: st, TTL: time.Hour}
	invites := &service.InviteKeyService{Store: st}
	router := NewRouter("test", testAdminToken, st, slog.Default())
	router.Registrar = &service.RegistrarService{
		Store:    st,
		Hasher:   cryptox.Hasher{Pepper: "test-pepper"},
		Invites:  invites,
		Sessions: sessions,
	}
	router.SessionService = sessions
	router.InviteKeys = invites
	router.ApplyRoutes()

	// Exhaust the strict budget with junk requests from one IP
	var last *httptest.ResponseRecorder
	for range httpx.StrictLimit.Burst + 1 {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			bytes.NewReader([]byte("{}")))
		req.RemoteAddr = "192.0.2.99:1000"
		last = httptest.NewRecorder()
		router.ServeHTTP(last, req)
	}

	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.NotEmpty(t, last.Header().Get("Retry-After"))
}
