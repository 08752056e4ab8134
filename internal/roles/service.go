package roles

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pressgate/pressgate/internal/rbac"
	"github.com/pressgate/pressgate/internal/shared"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id int64) (Role, error)
	CreateRole(ctx context.Context, name, description string) (Role, error)
	RenameRole(ctx context.Context, id int64, name, description string) (Role, error)
	DeleteRole(ctx context.Context, id int64) error
	PermissionNames(ctx context.Context, roleID int64) ([]string, error)
	ReplacePermissions(ctx context.Context, roleID int64, permissionNames []string) ([]string, error)
	DeleteRoleAssociations(ctx context.Context, roleID int64) error
}

// Service handles role business logic and guards the structural invariants
// around the superadmin role.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListRoles returns all roles with their permission names attached. The
// per-role lookups are independent reads and run concurrently.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	list, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range list {
		g.Go(func() error {
			if list[i].Name == rbac.RoleSuperadmin {
				list[i].Permissions = []string{rbac.WildcardPermission}
				return nil
			}
			perms, err := s.repo.PermissionNames(gctx, list[i].ID)
			if err != nil {
				return err
			}
			list[i].Permissions = perms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return list, nil
}

// GetRole fetches one role with permissions.
func (s *Service) GetRole(ctx context.Context, id int64) (Role, error) {
	role, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return Role{}, err
	}
	if role.Name == rbac.RoleSuperadmin {
		role.Permissions = []string{rbac.WildcardPermission}
		return role, nil
	}
	perms, err := s.repo.PermissionNames(ctx, role.ID)
	if err != nil {
		return Role{}, err
	}
	role.Permissions = perms
	return role, nil
}

// CreateRole inserts a role and attaches the supplied permission names.
// Names that do not resolve to an existing permission are skipped silently.
func (s *Service) CreateRole(ctx context.Context, name, description string, permissionNames []string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name required", shared.ErrInvalid)
	}
	role, err := s.repo.CreateRole(ctx, name, strings.TrimSpace(description))
	if err != nil {
		return Role{}, err
	}
	applied, err := s.repo.ReplacePermissions(ctx, role.ID, permissionNames)
	if err != nil {
		return Role{}, err
	}
	role.Permissions = applied
	return role, nil
}

// UpdateRole renames a role and fully replaces its permission set. The
// superadmin role is immutable: any update attempt is refused, including a
// rename to its own current name.
func (s *Service) UpdateRole(ctx context.Context, id int64, name, description string, permissionNames []string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name required", shared.ErrInvalid)
	}
	current, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return Role{}, err
	}
	if current.Name == rbac.RoleSuperadmin {
		return Role{}, fmt.Errorf("%w: the %s role cannot be modified", shared.ErrForbidden, rbac.RoleSuperadmin)
	}
	role, err := s.repo.RenameRole(ctx, id, name, strings.TrimSpace(description))
	if err != nil {
		return Role{}, err
	}
	applied, err := s.repo.ReplacePermissions(ctx, role.ID, permissionNames)
	if err != nil {
		return Role{}, err
	}
	role.Permissions = applied
	return role, nil
}

// DeleteRole removes a role and cascades its permission assignments and
// user links. The superadmin role cannot be deleted.
func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	current, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return err
	}
	if current.Name == rbac.RoleSuperadmin {
		return fmt.Errorf("%w: the %s role cannot be deleted", shared.ErrForbidden, rbac.RoleSuperadmin)
	}
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return err
	}
	// Cascade is best effort: resolver joins tolerate leftovers, and the
	// cleanup is idempotent so it can be re-run.
	return s.repo.DeleteRoleAssociations(ctx, id)
}
