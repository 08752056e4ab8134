package rbac

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/pressgate/pressgate/internal/shared"
)

func newPermissionsRouter(store *memoryStore) http.Handler {
	svc := NewService(store, DefaultVocabulary())
	gate := Middleware{Service: svc, Logger: slog.Default()}
	h := NewPermissionsHandler(slog.Default(), svc, gate)
	router := chi.NewRouter()
	h.MountRoutes(router)
	return router
}

func asRole(req *http.Request, roles ...string) *http.Request {
	sess := &shared.Session{}
	sess.SetUser("1")
	sess.SetRoles(roles)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func TestListPermissionsRequiresReadPermission(t *testing.T) {
	store := newMemoryStore()
	store.addRole("editor", "read:posts")
	store.addPermission("read:posts", "")
	router := newPermissionsRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asRole(httptest.NewRequest(http.MethodGet, "/", nil), "editor"))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, asRole(httptest.NewRequest(http.MethodGet, "/", nil), RoleSuperadmin))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreatePermissionEndpoint(t *testing.T) {
	store := newMemoryStore()
	router := newPermissionsRouter(store)

	req := asRole(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"create:posts","description":"write posts"}`)), RoleSuperadmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Name      string `json:"name"`
		Protected bool   `json:"protected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "create:posts", body.Name)
	require.False(t, body.Protected)

	bad := asRole(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"fly:posts"}`)), RoleSuperadmin)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, bad)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProtectedPermissionEndpointForbidden(t *testing.T) {
	store := newMemoryStore()
	perm := store.addPermission("delete:users", "")
	router := newPermissionsRouter(store)

	req := asRole(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/%d", perm.ID), nil), RoleSuperadmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVocabularyEndpoint(t *testing.T) {
	store := newMemoryStore()
	router := newPermissionsRouter(store)

	req := asRole(httptest.NewRequest(http.MethodGet, "/vocabulary", nil), RoleSuperadmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{"create", "read", "update", "delete"}, body["actions"])
	require.Len(t, body["protected"], 12)
}

func TestVocabularyOpenToRoleReaders(t *testing.T) {
	store := newMemoryStore()
	store.addRole("role-manager", "read:roles")
	store.addRole("editor", "read:posts")
	router := newPermissionsRouter(store)

	// read:roles grants the vocabulary but not the catalogue listing.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asRole(httptest.NewRequest(http.MethodGet, "/vocabulary", nil), "role-manager"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, asRole(httptest.NewRequest(http.MethodGet, "/", nil), "role-manager"))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, asRole(httptest.NewRequest(http.MethodGet, "/vocabulary", nil), "editor"))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
