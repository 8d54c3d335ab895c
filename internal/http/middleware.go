package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/pkg/httpx"
	"github.com/courtside/leagueauth/pkg/slogx"
)

// SessionCookieName is the cookie the browser clients hold their session
// token in. API clients may send the token as a Bearer header instead.
const SessionCookieName = "league_session"

// RequireSession resolves the caller's session from the session cookie or
// Authorization header and attaches the account and presented token to the
// request context. Unknown, expired, and revoked sessions get the same 401.
func RequireSession(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := sessionTokenFromRequest(r)
			if token == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
				return
			}

			session, err := sessions.Resolve(ctx, token)
			if err != nil {
				if !errors.Is(err, service.ErrSessionInvalid) {
					log.Error("session resolution failed", "err", err)
					httpx.WriteError(w, http.StatusInternalServerError, "server_error", "something went wrong")
					return
				}
				httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
				return
			}

			ctx = httpx.ContextWithSession(ctx, session.AccountID, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	return ""
}

// RequireAdminToken gates administrative endpoints behind a shared token
// configured at deploy time. With no token configured the endpoints are
// disabled outright.
func RequireAdminToken(token string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "administrative endpoints are disabled")
				return
			}

			presented := r.Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setSessionCookie(w http.ResponseWriter, token string, res service.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  res.Session.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
