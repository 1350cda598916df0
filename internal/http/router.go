package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/internal/store"
	"github.com/brightpath-agency/brightpath/pkg/httpx"
	"github.com/brightpath-agency/brightpath/pkg/slogx"

	_ "github.com/brightpath-agency/brightpath/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     httpx.TokenVerifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService      *service.AuthService
	ClientService    *service.ClientService
	CompanyService   *service.CompanyService
	LifecycleService *service.LifecycleService
	ShareService     *service.ShareService
}

func NewRouter(
	verifier httpx.TokenVerifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
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
	r.registerClients()
	r.registerCompanies()
	r.registerShare()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			BrightPath Recruitment API
//	@version		0.1.0
//	@description	Recruitment agency backend managing candidate profiles, hiring companies, and the suggestion workflow between them.
//	@description
//	@description	Staff endpoints require a bearer access token. The public share endpoint is guarded by an expiring token carried in the query string instead.
//
//	@contact.name				BrightPath Engineering
//	@contact.url				https://github.com/brightpath-agency/brightpath
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

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Strict IP limits on both: credential endpoints invite brute force.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}
	statusHandler := &StatusHandler{LifecycleService: r.LifecycleService}
	suggestHandler := &SuggestHandler{LifecycleService: r.LifecycleService}
	cvHandler := &CVUploadHandler{ClientService: r.ClientService}

	// Any authenticated account may create its own profile.
	r.Mux.Handle("POST /v1/clients",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Listing and pipeline operations are staff-only; single reads and CV
	// uploads only need a valid account.
	staff := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleRecruiter, domain.RoleAdmin),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}
	authed := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/clients", staff(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/clients/{id}", authed(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PATCH /v1/clients/{id}/status", staff(http.HandlerFunc(statusHandler.HandleChangeStatus)))
	r.Mux.Handle("POST /v1/clients/{id}/suggest", staff(http.HandlerFunc(suggestHandler.HandleSuggest)))
	r.Mux.Handle("PUT /v1/clients/{id}/cv", authed(http.HandlerFunc(cvHandler.HandleUpload)))

	// Deletion is destructive, admin only.
	r.Mux.Handle("DELETE /v1/clients/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleAdmin),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCompanies() {
	h := &CompaniesHandler{CompanyService: r.CompanyService}

	staff := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(domain.RoleRecruiter, domain.RoleAdmin),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}
	authed := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/companies", staff(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /v1/companies", authed(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/companies/{id}", authed(http.HandlerFunc(h.HandleGet)))
}

func (r *Router) registerShare() {
	h := &ShareHandler{ShareService: r.ShareService}

	// Public endpoint; the token itself gates access, so only a lenient IP
	// limit applies.
	r.Mux.Handle("GET /share/clients/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleView),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
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
