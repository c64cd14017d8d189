package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/service"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/httpx"
	"github.com/foodiehq/foodie/pkg/jwtx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	sessionCodec *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	InviteService  *service.InviteService
	PartnerService *service.PartnerService
	AccountService *service.AccountService
}

func NewRouter(sessionCodec *jwtx.Codec, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		sessionCodec: sessionCodec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvites()
	r.registerPartners()
	r.registerAccounts()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// requireScope gates a route behind one scope using the session codec.
func (r *Router) requireScope(scope domain.Scope) httpx.Middleware {
	return RequireScope(r.sessionCodec, r.store, scope)
}

func (r *Router) registerAuth() {
	// One login route per scope; all strict-limited by IP against brute force.
	routes := map[string]domain.Scope{
		"POST /auth":               domain.ScopeUser,
		"POST /auth/admin":         domain.ScopePlatformAdmin,
		"POST /auth/vendor":        domain.ScopeVendorStaff,
		"POST /auth/vendor-admin":  domain.ScopeVendorAdmin,
		"POST /auth/courier":       domain.ScopeCourierStaff,
		"POST /auth/courier-admin": domain.ScopeCourierAdmin,
	}
	for pattern, scope := range routes {
		r.Mux.Handle(pattern,
			httpx.Chain(&AuthHandler{SessionService: r.SessionService, Scope: scope},
				httpx.RateLimitByIP(httpx.StrictLimit),
			),
		)
	}
}

func (r *Router) registerInvites() {
	// Public inspection and redemption endpoints. Redemption is
	// strict-limited: each attempt burns password-hashing work.
	r.Mux.Handle("GET /invites/details",
		httpx.Chain(&InviteDetailsHandler{InviteService: r.InviteService},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /invites/accept",
		httpx.Chain(&InviteAcceptHandler{InviteService: r.InviteService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Platform admins mint org-admin invites for any organization.
	r.Mux.Handle("POST /admin/invites/vendors/{id}",
		httpx.Chain(&AdminInviteMintHandler{InviteService: r.InviteService, OrgType: domain.OrgTypeVendor},
			r.requireScope(domain.ScopePlatformAdmin),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /admin/invites/couriers/{id}",
		httpx.Chain(&AdminInviteMintHandler{InviteService: r.InviteService, OrgType: domain.OrgTypeCourier},
			r.requireScope(domain.ScopePlatformAdmin),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)

	// Org admins mint staff invites for their own organization only.
	r.Mux.Handle("POST /vendor-admin/invites",
		httpx.Chain(&OrgInviteMintHandler{InviteService: r.InviteService, OrgType: domain.OrgTypeVendor},
			r.requireScope(domain.ScopeVendorAdmin),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /courier-admin/invites",
		httpx.Chain(&OrgInviteMintHandler{InviteService: r.InviteService, OrgType: domain.OrgTypeCourier},
			r.requireScope(domain.ScopeCourierAdmin),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPartners() {
	r.Mux.Handle("POST /admin/vendors",
		httpx.Chain(&CreateVendorHandler{PartnerService: r.PartnerService},
			r.requireScope(domain.ScopePlatformAdmin),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /admin/couriers",
		httpx.Chain(&CreateCourierHandler{PartnerService: r.PartnerService},
			r.requireScope(domain.ScopePlatformAdmin),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /vendors",
		httpx.Chain(&ListVendorsHandler{PartnerService: r.PartnerService},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /couriers",
		httpx.Chain(&ListCouriersHandler{PartnerService: r.PartnerService},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("PUT /vendor-admin/open-hours/{day}",
		httpx.Chain(&UpdateOpenHoursHandler{PartnerService: r.PartnerService},
			r.requireScope(domain.ScopeVendorAdmin),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAccounts() {
	r.Mux.Handle("POST /users",
		httpx.Chain(&RegisterHandler{AccountService: r.AccountService},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
