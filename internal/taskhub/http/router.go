package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/internal/taskhub/store"
	"github.com/oakmount/taskhub/pkg/httpx"
	"github.com/oakmount/taskhub/pkg/jwtx"
	"github.com/oakmount/taskhub/pkg/slogx"

	_ "github.com/oakmount/taskhub/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	UserService *service.UserService
	TaskService *service.TaskService
}

func NewRouter(
	signer *jwtx.Signer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
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
	r.registerUsers()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TaskHub API
//	@version		0.1.0
//	@description	Task management service with per-user tasks, categories and tags.
//	@description
//	@description				Access tokens are HS256-signed JWTs obtained from the token endpoint.
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
	// POST /token - strict rate limit (authentication attempts)
	tokenHandler := &TokenHandler{UserService: r.UserService, Signer: r.signer}
	r.Mux.Handle("POST /api/v1/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	users := &UsersHandler{UserService: r.UserService}
	categories := &CategoriesHandler{UserService: r.UserService}
	tags := &TagsHandler{UserService: r.UserService}

	// POST /users - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /api/v1/users",
		httpx.Chain(http.HandlerFunc(users.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	secured := func(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /api/v1/users/me", secured(users.HandleGetMe, httpx.LenientLimit))
	r.Mux.Handle("PUT /api/v1/users/me", secured(users.HandleUpdateMe, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/users/me", secured(users.HandleDeactivateMe, httpx.ModerateLimit))

	r.Mux.Handle("GET /api/v1/users/me/categories", secured(categories.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/users/me/categories", secured(categories.HandleAdd, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/users/me/categories/{name}", secured(categories.HandleRemove, httpx.ModerateLimit))

	r.Mux.Handle("GET /api/v1/users/me/tags", secured(tags.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/users/me/tags", secured(tags.HandleAdd, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/users/me/tags/{name}", secured(tags.HandleRemove, httpx.ModerateLimit))
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TaskService: r.TaskService}

	secured := func(hf http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(hf,
			httpx.AuthnMiddleware(r.signer),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /api/v1/tasks", secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /api/v1/tasks", secured(h.HandleCreate, httpx.ModerateLimit))

	// Registered before the {id} routes; the more specific pattern wins.
	r.Mux.Handle("GET /api/v1/tasks/categories", secured(h.HandleUsedCategories, httpx.LenientLimit))

	r.Mux.Handle("GET /api/v1/tasks/{id}", secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /api/v1/tasks/{id}", secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/tasks/{id}", secured(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("POST /api/v1/tasks/{id}/complete", secured(h.HandleComplete, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
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
