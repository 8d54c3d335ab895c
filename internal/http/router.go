package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/courtside/leagueauth/internal/service"
	"github.com/courtside/leagueauth/internal/store"
	"github.com/courtside/leagueauth/pkg/httpx"
	"github.com/courtside/leagueauth/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	adminToken   string

	store          store.Store
	Registrar      *service.RegistrarService
	SessionService *service.SessionService
	InviteKeys     *service.InviteKeyService
}

func NewRouter(
	buildVersion string,
	adminToken string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		adminToken:   adminToken,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Default middleware chain applied to every route.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAdmin()
	r.registerSystem()
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{Registrar: r.Registrar}
	loginHandler := &LoginHandler{Registrar: r.Registrar}
	logoutHandler := &LogoutHandler{Sessions: r.SessionService}
	meHandler := &MeHandler{Registrar: r.Registrar}

	// POST /api/auth/register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/auth/login - strict rate limit by IP (brute force prevention)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/auth/logout - requires an existing session
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(logoutHandler,
			RequireSession(r.SessionService),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	// GET /api/auth/me - authenticated introspection
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(meHandler,
			RequireSession(r.SessionService),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	mintHandler := &InviteMintHandler{InviteKeys: r.InviteKeys}

	// POST /api/admin/invites - admin-token gated, strict rate limit
	r.Mux.Handle("POST /api/admin/invites",
		httpx.Chain(mintHandler,
			RequireAdminToken(r.adminToken),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health probes - lenient limits, monitoring may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
