package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pressgate/pressgate/internal/auth"
	"github.com/pressgate/pressgate/internal/observability"
	"github.com/pressgate/pressgate/internal/posts"
	"github.com/pressgate/pressgate/internal/rbac"
	"github.com/pressgate/pressgate/internal/roles"
	"github.com/pressgate/pressgate/internal/shared"
	"github.com/pressgate/pressgate/internal/users"
	"github.com/pressgate/pressgate/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	CSRFManager        *shared.CSRFManager
	AuthHandler        *auth.Handler
	UsersHandler       *users.Handler
	RolesHandler       *roles.Handler
	PermissionsHandler *rbac.PermissionsHandler
	PostsHandler       *posts.Handler
	Pool               *pgxpool.Pool
	RBACMiddleware     rbac.Middleware
	Metrics            *observability.Metrics
	Audit              *jobs.Client
}

// NewRouter constructs the chi.Router with Pressgate defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
		Audit:          params.Audit,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(ar chi.Router) {
		ar.Use(LoginRateLimiter(params.Config))
		params.AuthHandler.MountRoutes(ar)
	})

	r.Route("/users", func(ur chi.Router) {
		params.UsersHandler.MountRoutes(ur)
	})

	r.Route("/roles", func(rr chi.Router) {
		params.RolesHandler.MountRoutes(rr)
	})

	r.Route("/permissions", func(pr chi.Router) {
		params.PermissionsHandler.MountRoutes(pr)
	})

	r.Route("/posts", func(pr chi.Router) {
		params.PostsHandler.MountRoutes(pr)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
