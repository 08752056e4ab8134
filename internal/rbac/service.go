package rbac

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pressgate/pressgate/internal/shared"
)

// ResolverStore is the read side the permission resolver depends on.
type ResolverStore interface {
	GetRoleByName(ctx context.Context, name string) (Role, error)
	RolePermissionNames(ctx context.Context, roleID int64) ([]string, error)
}

// Store defines persistence operations for the RBAC catalogue.
type Store interface {
	ResolverStore
	ListPermissions(ctx context.Context) ([]Permission, error)
	GetPermission(ctx context.Context, id int64) (Permission, error)
	CreatePermission(ctx context.Context, name, description string) (Permission, error)
	UpdatePermission(ctx context.Context, id int64, name, description string) (Permission, error)
	DeletePermission(ctx context.Context, id int64) error
	DeletePermissionAssignments(ctx context.Context, permissionID int64) (int64, error)
}

// Service resolves roles to effective permission sets and guards structural
// mutations of the permission catalogue.
type Service struct {
	store Store
	vocab Vocabulary
}

// NewService constructs a Service over the given store and vocabulary.
func NewService(store Store, vocab Vocabulary) *Service {
	return &Service{store: store, vocab: vocab}
}

// Vocabulary exposes the grammar for validation and option rendering.
func (s *Service) Vocabulary() Vocabulary {
	return s.vocab
}

// ResolveForRole expands a single role name into its permission set.
// The superadmin role short-circuits to the unrestricted set without a store
// lookup. Unknown roles grant nothing and do not error; the same applies to
// a role whose assignment rows point at permissions that no longer exist.
func (s *Service) ResolveForRole(ctx context.Context, roleName string) (PermissionSet, error) {
	if roleName == RoleSuperadmin {
		return Unrestricted(), nil
	}
	role, err := s.store.GetRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return NewPermissionSet(), nil
		}
		return PermissionSet{}, err
	}
	names, err := s.store.RolePermissionNames(ctx, role.ID)
	if err != nil {
		return PermissionSet{}, err
	}
	return NewPermissionSet(names...), nil
}

// ResolveForRoles returns the union of the permission sets of all supplied
// roles. A set containing superadmin resolves to unrestricted immediately.
func (s *Service) ResolveForRoles(ctx context.Context, roleNames []string) (PermissionSet, error) {
	for _, name := range roleNames {
		if name == RoleSuperadmin {
			return Unrestricted(), nil
		}
	}
	result := NewPermissionSet()
	for _, name := range roleNames {
		set, err := s.ResolveForRole(ctx, name)
		if err != nil {
			return PermissionSet{}, err
		}
		result = result.Union(set)
	}
	return result, nil
}

// Allowed reports whether the principal's roles grant the permission. Denial
// is a false return, never an error; errors are infrastructural only.
func (s *Service) Allowed(ctx context.Context, principalRoles []string, permission string) (bool, error) {
	set, err := s.ResolveForRoles(ctx, principalRoles)
	if err != nil {
		return false, err
	}
	return set.Has(permission), nil
}

// ListPermissions returns the full permission catalogue.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.store.ListPermissions(ctx)
}

// GetPermission fetches one permission by ID.
func (s *Service) GetPermission(ctx context.Context, id int64) (Permission, error) {
	return s.store.GetPermission(ctx, id)
}

// CreatePermission inserts a new permission after validating its name
// against the grammar. Duplicates surface as shared.ErrConflict from the
// store's unique constraint.
func (s *Service) CreatePermission(ctx context.Context, name, description string) (Permission, error) {
	name = strings.TrimSpace(name)
	if !s.vocab.ValidName(name) {
		return Permission{}, fmt.Errorf("%w: permission name %q must be action:resource with action in %v and resource in %v",
			shared.ErrInvalid, name, s.vocab.Actions(), s.vocab.Resources())
	}
	return s.store.CreatePermission(ctx, name, strings.TrimSpace(description))
}

// UpdatePermission renames a permission or edits its description. Protected
// permissions keep their name; description edits stay allowed.
func (s *Service) UpdatePermission(ctx context.Context, id int64, name, description string) (Permission, error) {
	name = strings.TrimSpace(name)
	current, err := s.store.GetPermission(ctx, id)
	if err != nil {
		return Permission{}, err
	}
	if IsProtected(current.Name) && name != current.Name {
		return Permission{}, fmt.Errorf("%w: core permission %s cannot be renamed", shared.ErrForbidden, current.Name)
	}
	if name != current.Name && !s.vocab.ValidName(name) {
		return Permission{}, fmt.Errorf("%w: permission name %q must be action:resource", shared.ErrInvalid, name)
	}
	return s.store.UpdatePermission(ctx, id, name, strings.TrimSpace(description))
}

// DeletePermission removes a permission and cascades its role assignments.
// Protected permissions are refused with the store untouched.
func (s *Service) DeletePermission(ctx context.Context, id int64) error {
	current, err := s.store.GetPermission(ctx, id)
	if err != nil {
		return err
	}
	if IsProtected(current.Name) {
		return fmt.Errorf("%w: core permission %s cannot be deleted", shared.ErrForbidden, current.Name)
	}
	if err := s.store.DeletePermission(ctx, id); err != nil {
		return err
	}
	// Cascade is best effort; a leftover assignment row resolves as nothing
	// because permission lookups join on the permissions table.
	if _, err := s.store.DeletePermissionAssignments(ctx, id); err != nil {
		return err
	}
	return nil
}
