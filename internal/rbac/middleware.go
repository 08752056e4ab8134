package rbac

import (
	"log/slog"
	"net/http"

	"github.com/pressgate/pressgate/internal/observability"
	"github.com/pressgate/pressgate/internal/platform/httpx"
	"github.com/pressgate/pressgate/internal/shared"
)

// Middleware guards HTTP routes with a single required permission per route.
// The principal's role set comes from the session; the decision runs before
// the wrapped handler so a denial performs zero mutation.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Require ensures the current principal's roles grant the permission.
func (m Middleware) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess == nil || sess.User() == "" {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
				return
			}
			roles := sess.Roles()
			allowed, err := m.Service.Allowed(r.Context(), roles, permission)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("rbac require", slog.String("permission", permission), slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if m.Metrics != nil {
				m.Metrics.ObserveDecision(permission, allowed)
			}
			if !allowed {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "missing permission "+permission)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny ensures at least one of the permissions is granted. It guards
// surfaces shared by more than one editor, like the permission vocabulary.
func (m Middleware) RequireAny(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess == nil || sess.User() == "" {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
				return
			}
			set, err := m.Service.ResolveForRoles(r.Context(), sess.Roles())
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("rbac require any", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			for _, p := range permissions {
				if set.Has(p) {
					if m.Metrics != nil {
						m.Metrics.ObserveDecision(p, true)
					}
					next.ServeHTTP(w, r)
					return
				}
			}
			if m.Metrics != nil && len(permissions) > 0 {
				m.Metrics.ObserveDecision(permissions[0], false)
			}
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "")
		})
	}
}
