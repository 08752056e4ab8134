package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/pressgate/pressgate/internal/shared"
)

func newTestHandler(t *testing.T, repo Repository) (*Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sm := shared.NewSessionManager(client, "pressgate_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrf-secret")
	h := NewHandler(slog.Default(), NewService(repo), sm, csrf, nil)
	return h, sm
}

func serveWithSession(h *Handler, sm *shared.SessionManager, req *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := sm.Load(r.Context(), r)
			ctx := shared.ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
			_ = sm.Commit(context.Background(), w, r, sess)
		})
	})
	h.MountRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginReturnsPrincipal(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(t, "Ada", "ada@example.com", "s3cret!", "editor")
	h, sm := newTestHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ada@example.com","password":"s3cret!"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serveWithSession(h, sm, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Name  string   `json:"name"`
		Role  string   `json:"role"`
		Roles []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Ada", body.Name)
	require.Equal(t, "editor", body.Role)
	require.Equal(t, []string{"editor"}, body.Roles)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(t, "Ada", "ada@example.com", "s3cret!")
	h, sm := newTestHandler(t, repo)

	cases := []string{
		`{"email":"ada@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"whatever"}`,
		`{"email":"not-an-email","password":"s3cret!"}`,
		`{"email":"ada@example.com","password":""}`,
	}
	var responses []string
	for _, payload := range cases {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := serveWithSession(h, sm, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, payload)
		responses = append(responses, rec.Body.String())
	}
	for _, body := range responses[1:] {
		require.Equal(t, responses[0], body)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newMemoryRepo()
	h, sm := newTestHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"s3cret!"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serveWithSession(h, sm, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	login := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ada@example.com","password":"s3cret!"}`))
	login.Header.Set("Content-Type", "application/json")
	rec = serveWithSession(h, sm, login)
	require.Equal(t, http.StatusOK, rec.Code)
	// Accounts registered without roles authenticate as viewer.
	require.Contains(t, rec.Body.String(), `"role":"viewer"`)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(t, "Ada", "ada@example.com", "s3cret!")
	h, sm := newTestHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"name":"Other","email":"ada@example.com","password":"s3cret!"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serveWithSession(h, sm, req)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCSRFEndpointIssuesToken(t *testing.T) {
	h, sm := newTestHandler(t, newMemoryRepo())

	req := httptest.NewRequest(http.MethodGet, "/csrf", nil)
	rec := serveWithSession(h, sm, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["csrfToken"])
}

func TestShowCurrentRequiresLogin(t *testing.T) {
	h, sm := newTestHandler(t, newMemoryRepo())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := serveWithSession(h, sm, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
