package http

import (
	"net/http"

	"github.com/schemacraft/schemacraft/internal/api/http/handlers"
	"github.com/schemacraft/schemacraft/internal/api/http/middleware"
	"github.com/schemacraft/schemacraft/internal/auth"
	"github.com/schemacraft/schemacraft/internal/logger"
	"github.com/schemacraft/schemacraft/internal/metrics"
	"github.com/schemacraft/schemacraft/internal/storage/documents"
	"github.com/schemacraft/schemacraft/internal/storage/registry"
	"github.com/schemacraft/schemacraft/schema"
)

// Deps holds the components the HTTP API serves
type Deps struct {
	Registry  *registry.Store
	Documents *documents.Store
	Users     *auth.Store
	Tokens    *auth.TokenManager
	Validator *schema.Validator
	Metrics   *metrics.APIMetrics
}

// Router manages HTTP routes and middleware
type Router struct {
	mux              *http.ServeMux
	deps             Deps
	authHandlers     *handlers.AuthHandlers
	schemaHandlers   *handlers.SchemaHandlers
	documentHandlers *handlers.DocumentHandlers
	userHandlers     *handlers.UserHandlers
	adminHandlers    *handlers.AdminHandlers
}

// NewRouter creates a new router
func NewRouter(deps Deps) *Router {
	r := &Router{
		mux:              http.NewServeMux(),
		deps:             deps,
		authHandlers:     handlers.NewAuthHandlers(deps.Users, deps.Tokens),
		schemaHandlers:   handlers.NewSchemaHandlers(deps.Registry, deps.Metrics),
		documentHandlers: handlers.NewDocumentHandlers(deps.Registry, deps.Documents, deps.Validator, deps.Metrics),
		userHandlers:     handlers.NewUserHandlers(deps.Users, deps.Registry),
		adminHandlers:    handlers.NewAdminHandlers(deps.Users, deps.Registry),
	}

	r.setupRoutes()

	return r
}

// setupRoutes sets up all HTTP routes
func (r *Router) setupRoutes() {
	log := logger.WithComponent("http.middleware")

	base := middleware.Chain(
		middleware.Recovery(log),
		middleware.Logging(log),
		middleware.CORS(),
	)
	dashboard := middleware.Chain(
		base,
		middleware.Metrics(r.deps.Metrics, "dashboard"),
		middleware.SessionAuth(r.deps.Tokens),
	)
	admin := middleware.Chain(
		dashboard,
		middleware.RequireAdmin(),
	)
	generated := middleware.Chain(
		base,
		middleware.Metrics(r.deps.Metrics, "generated"),
		middleware.APIKeyAuth(r.deps.Users, r.deps.Metrics),
	)

	// Preflight requests short-circuit in the CORS middleware
	r.mux.Handle("OPTIONS /", base(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	// Health endpoints (no auth required)
	r.handle("GET /health", base, http.HandlerFunc(handlers.HealthCheck))
	r.handle("GET /ready", base, handlers.ReadinessCheck(r.deps.Documents))

	// Account endpoints
	r.handle("POST /auth/signup", base, http.HandlerFunc(r.authHandlers.Signup))
	r.handle("POST /auth/signin", base, http.HandlerFunc(r.authHandlers.Signin))
	r.handle("GET /auth/me", dashboard, http.HandlerFunc(r.authHandlers.Me))

	// Schema registry endpoints
	r.handle("POST /schemas", dashboard, http.HandlerFunc(r.schemaHandlers.Create))
	r.handle("GET /schemas", dashboard, http.HandlerFunc(r.schemaHandlers.List))
	r.handle("GET /schemas/{id}", dashboard, http.HandlerFunc(r.schemaHandlers.Get))
	r.handle("DELETE /schemas/{id}", dashboard, http.HandlerFunc(r.schemaHandlers.Delete))
	r.handle("GET /schemas/{id}/endpoints", dashboard, http.HandlerFunc(r.schemaHandlers.Endpoints))

	// Dashboard endpoints
	r.handle("GET /user/dashboard", dashboard, http.HandlerFunc(r.userHandlers.Dashboard))
	r.handle("POST /user/regenerate-api-key", dashboard, http.HandlerFunc(r.userHandlers.RegenerateAPIKey))
	r.handle("GET /user/api-usage", dashboard, http.HandlerFunc(r.userHandlers.APIUsage))

	// Admin endpoints
	r.handle("GET /admin/users", admin, http.HandlerFunc(r.adminHandlers.ListUsers))
	r.handle("PUT /admin/users/{id}/toggle-status", admin, http.HandlerFunc(r.adminHandlers.ToggleUserStatus))
	r.handle("POST /admin/users/{id}/reset-quota", admin, http.HandlerFunc(r.adminHandlers.ResetUserQuota))
	r.handle("GET /admin/stats", admin, http.HandlerFunc(r.adminHandlers.Stats))

	// Generated collection endpoints
	r.handle("POST /api/{collection}", generated, http.HandlerFunc(r.documentHandlers.Create))
	r.handle("GET /api/{collection}", generated, http.HandlerFunc(r.documentHandlers.List))
	r.handle("GET /api/{collection}/{id}", generated, http.HandlerFunc(r.documentHandlers.Get))
	r.handle("PUT /api/{collection}/{id}", generated, http.HandlerFunc(r.documentHandlers.Update))
	r.handle("DELETE /api/{collection}/{id}", generated, http.HandlerFunc(r.documentHandlers.Delete))
}

func (r *Router) handle(pattern string, chain middleware.Middleware, h http.Handler) {
	r.mux.Handle(pattern, chain(h))
}
