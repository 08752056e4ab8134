// Package seed provisions the baseline RBAC catalogue on first run.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/pressgate/pressgate/internal/rbac"
)

// BootstrapEmail is the bootstrap superadmin login. Collaborators are
// expected to force a credential rotation on first use.
const BootstrapEmail = "superadmin@example.com"

// BootstrapPassword is the known seed credential for the bootstrap account.
const BootstrapPassword = "SuperAdmin@123"

// Store is the persistence surface seeding needs. Every method is an
// idempotent ensure: existing rows are left alone.
type Store interface {
	EnsurePermission(ctx context.Context, name, description string) error
	EnsureRole(ctx context.Context, name, description string) error
	EnsureGrant(ctx context.Context, roleName, permissionName string) error
	EnsureUser(ctx context.Context, name, email, passwordHash string) (int64, bool, error)
	EnsureUserRole(ctx context.Context, userID int64, roleName string) error
}

// DefaultGrants documents the standard role assignments. The superadmin
// role receives no grant rows at all; the resolver short-circuits it to the
// unrestricted set, so rows would only be dead weight.
func DefaultGrants() map[string][]string {
	return map[string][]string{
		rbac.RoleAdmin: {
			"create:posts", "read:posts", "update:posts", "delete:posts",
			"create:users", "read:users", "update:users", "delete:users",
			"read:roles", "read:permissions",
		},
		rbac.RoleEditor: {"create:posts", "read:posts", "update:posts"},
		rbac.RoleViewer: {"read:posts"},
	}
}

// Run seeds permissions, roles, default grants and the bootstrap superadmin
// account. Safe to run on every startup.
func Run(ctx context.Context, store Store, vocab rbac.Vocabulary, logger *slog.Logger) error {
	for _, resource := range vocab.Resources() {
		for _, action := range vocab.Actions() {
			name := action + ":" + resource
			if err := store.EnsurePermission(ctx, name, fmt.Sprintf("%s access on %s", action, resource)); err != nil {
				return fmt.Errorf("seed permission %s: %w", name, err)
			}
		}
	}

	roleDescriptions := map[string]string{
		rbac.RoleSuperadmin: "Unrestricted access to everything",
		rbac.RoleAdmin:      "Manages content and accounts",
		rbac.RoleEditor:     "Writes and edits posts",
		rbac.RoleViewer:     "Read-only access to posts",
	}
	for _, name := range []string{rbac.RoleSuperadmin, rbac.RoleAdmin, rbac.RoleEditor, rbac.RoleViewer} {
		if err := store.EnsureRole(ctx, name, roleDescriptions[name]); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}

	for roleName, grants := range DefaultGrants() {
		for _, permissionName := range grants {
			if err := store.EnsureGrant(ctx, roleName, permissionName); err != nil {
				return fmt.Errorf("seed grant %s -> %s: %w", roleName, permissionName, err)
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userID, created, err := store.EnsureUser(ctx, "Super Admin", BootstrapEmail, string(hash))
	if err != nil {
		return fmt.Errorf("seed superadmin user: %w", err)
	}
	if created {
		if err := store.EnsureUserRole(ctx, userID, rbac.RoleSuperadmin); err != nil {
			return fmt.Errorf("seed superadmin assignment: %w", err)
		}
		if logger != nil {
			logger.Info("bootstrap superadmin created", slog.String("email", BootstrapEmail))
		}
	}
	return nil
}
