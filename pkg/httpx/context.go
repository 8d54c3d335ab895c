package httpx

import (
	"context"
	"net/http"
)

type ctxKey string

const (
	// CtxKeyAccountID carries the authenticated account's ID.
	CtxKeyAccountID ctxKey = "account_id"
	// CtxKeySessionToken carries the raw opaque token the caller presented,
	// so logout can revoke exactly that session.
	CtxKeySessionToken ctxKey = "session_token"
)

// ContextWithSession attaches the authenticated account and the presented
// session token to the context.
func ContextWithSession(ctx context.Context, accountID, token string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, accountID)
	return context.WithValue(ctx, CtxKeySessionToken, token)
}

// AccountIDFromContext returns the authenticated account ID, if any.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyAccountID).(string)
	return id, ok && id != ""
}

// SessionTokenFromContext returns the presented session token, if any.
func SessionTokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(CtxKeySessionToken).(string)
	return tok, ok && tok != ""
}

func accountIDFromRequest(r *http.Request) string {
	id, _ := AccountIDFromContext(r.Context())
	return id
}
