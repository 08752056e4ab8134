package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("CSRF_SECRET", "csrf-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.Equal(t, []string{"users", "posts", "roles", "permissions"}, cfg.PermissionResources)
	require.Equal(t, 10, cfg.LoginRateLimit)
	require.Equal(t, time.Minute, cfg.LoginRateWindow)
	require.True(t, cfg.SeedOnStart)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigExtendedResources(t *testing.T) {
	t.Setenv("SESSION_SECRET", "session-secret")
	t.Setenv("CSRF_SECRET", "csrf-secret")
	t.Setenv("PERMISSION_RESOURCES", "users,posts,roles,permissions,comments")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Contains(t, cfg.PermissionResources, "comments")
}

func TestCSRFExemptPaths(t *testing.T) {
	require.True(t, csrfExempt("/auth/login"))
	require.True(t, csrfExempt("/auth/register"))
	require.False(t, csrfExempt("/auth/logout"))
	require.False(t, csrfExempt("/permissions"))
}
