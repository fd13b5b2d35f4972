package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/metrics"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/httpx"
	"github.com/aussiebroadwan/clinicadmin/pkg/jwtx"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"

	_ "github.com/aussiebroadwan/clinicadmin/api/admin" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	scopeRead  = "admin:read"
	scopeWrite = "admin:write"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	store            store.Store
	AuthService      *service.AuthService
	RolesService     *service.RolesService
	MenusService     *service.MenusService
	MenuRolesService *service.MenuRolesService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		metrics:      m,
	}

	// The metrics middleware reads r.Pattern, which the mux sets on the
	// request it was handed, so it must sit inside slogx (which copies it).
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger, "/livez", "/readyz", "/metrics"),
	}
	if m != nil {
		r.middlewares = append(r.middlewares, m.HTTPMiddleware)
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerRoles()
	r.registerMenus()
	r.registerMenuRoles()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Clinic Admin API
//	@version		0.1.0
//	@description	Back office API for the clinic's role based navigation: roles, the menu catalogue and which menus each role may open.
//	@description
//	@description				Access tokens are EdDSA signed JWTs issued by the login endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/clinicadmin
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed wraps h with bearer authentication, an optional scope check and a
// per-user rate limit.
func (r *Router) authed(h http.HandlerFunc, limit httpx.RateLimitConfig, scopes ...string) http.Handler {
	m := []httpx.Middleware{httpx.AuthnMiddleware(r.verifier)}
	if len(scopes) > 0 {
		m = append(m, httpx.RequireAnyScope(scopes...))
	}
	m = append(m, httpx.RateLimitByUser(limit))
	return httpx.Chain(h, m...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Login is the only unauthenticated write, so it gets the strict profile.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /v1/me", r.authed(h.HandleMe, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/me/password", r.authed(h.HandleChangePassword, httpx.StrictLimit))
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	r.Mux.Handle("GET /v1/roles", r.authed(h.HandleList, httpx.LenientLimit, scopeRead))
	r.Mux.Handle("POST /v1/roles", r.authed(h.HandleCreate, httpx.ModerateLimit, scopeWrite))
	r.Mux.Handle("DELETE /v1/roles/{id}", r.authed(h.HandleDelete, httpx.ModerateLimit, scopeWrite))
}

func (r *Router) registerMenus() {
	h := &MenusHandler{MenusService: r.MenusService}

	r.Mux.Handle("GET /v1/menus", r.authed(h.HandleList, httpx.LenientLimit, scopeRead))
	r.Mux.Handle("GET /v1/menus/tree", r.authed(h.HandleTree, httpx.LenientLimit, scopeRead))
	r.Mux.Handle("POST /v1/menus", r.authed(h.HandleCreate, httpx.ModerateLimit, scopeWrite))
	r.Mux.Handle("PUT /v1/menus/{id}", r.authed(h.HandleUpdate, httpx.ModerateLimit, scopeWrite))
	r.Mux.Handle("DELETE /v1/menus/{id}", r.authed(h.HandleDelete, httpx.ModerateLimit, scopeWrite))
}

func (r *Router) registerMenuRoles() {
	h := &MenuRolesHandler{MenuRolesService: r.MenuRolesService}

	r.Mux.Handle("GET /v1/menuroles", r.authed(h.HandleList, httpx.LenientLimit, scopeRead))
	// The editor fans out one call per changed menu.
	r.Mux.Handle("POST /v1/menuroles/assign", r.authed(h.HandleAssign, httpx.LenientLimit, scopeWrite))
	r.Mux.Handle("DELETE /v1/menuroles/remove/{menuId}/{roleId}", r.authed(h.HandleRemove, httpx.LenientLimit, scopeWrite))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
