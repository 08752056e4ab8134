package roles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressgate/pressgate/internal/rbac"
	"github.com/pressgate/pressgate/internal/shared"
)

type memoryRepo struct {
	roles      map[int64]Role
	grants     map[int64][]string
	known      map[string]bool
	userLinks  map[int64]int
	nextID     int64
	cleanupLog []int64
}

func newMemoryRepo(knownPermissions ...string) *memoryRepo {
	known := make(map[string]bool, len(knownPermissions))
	for _, name := range knownPermissions {
		known[name] = true
	}
	return &memoryRepo{
		roles:     make(map[int64]Role),
		grants:    make(map[int64][]string),
		known:     known,
		userLinks: make(map[int64]int),
	}
}

func (r *memoryRepo) seed(name string, permissions ...string) Role {
	r.nextID++
	role := Role{ID: r.nextID, Name: name}
	r.roles[role.ID] = role
	r.grants[role.ID] = permissions
	return role
}

func (r *memoryRepo) ListRoles(ctx context.Context) ([]Role, error) {
	result := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		result = append(result, role)
	}
	return result, nil
}

func (r *memoryRepo) GetRole(ctx context.Context, id int64) (Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	return role, nil
}

func (r *memoryRepo) CreateRole(ctx context.Context, name, description string) (Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return Role{}, shared.ErrConflict
		}
	}
	r.nextID++
	role := Role{ID: r.nextID, Name: name, Description: description}
	r.roles[role.ID] = role
	return role, nil
}

func (r *memoryRepo) RenameRole(ctx context.Context, id int64, name, description string) (Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	role.Name = name
	role.Description = description
	r.roles[id] = role
	return role, nil
}

func (r *memoryRepo) DeleteRole(ctx context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *memoryRepo) PermissionNames(ctx context.Context, roleID int64) ([]string, error) {
	return append([]string(nil), r.grants[roleID]...), nil
}

func (r *memoryRepo) ReplacePermissions(ctx context.Context, roleID int64, permissionNames []string) ([]string, error) {
	applied := make([]string, 0, len(permissionNames))
	for _, name := range permissionNames {
		if r.known[name] {
			applied = append(applied, name)
		}
	}
	r.grants[roleID] = applied
	return applied, nil
}

func (r *memoryRepo) DeleteRoleAssociations(ctx context.Context, roleID int64) error {
	delete(r.grants, roleID)
	delete(r.userLinks, roleID)
	r.cleanupLog = append(r.cleanupLog, roleID)
	return nil
}

func TestCreateRoleAttachesKnownPermissions(t *testing.T) {
	repo := newMemoryRepo("read:posts", "update:posts")
	svc := NewService(repo)

	role, err := svc.CreateRole(context.Background(), " moderator ", "keeps things civil", []string{"read:posts", "update:posts", "fly:posts"})
	require.NoError(t, err)
	require.Equal(t, "moderator", role.Name)
	require.Equal(t, []string{"read:posts", "update:posts"}, role.Permissions)
}

func TestCreateRoleEmptyNameInvalid(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.CreateRole(context.Background(), "   ", "", nil)
	require.ErrorIs(t, err, shared.ErrInvalid)
}

func TestCreateRoleDuplicateConflicts(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed("editor")
	svc := NewService(repo)

	_, err := svc.CreateRole(context.Background(), "editor", "", nil)
	require.ErrorIs(t, err, shared.ErrConflict)
}

func TestUpdateRoleReplacesPermissionSet(t *testing.T) {
	repo := newMemoryRepo("read:posts", "create:posts", "delete:posts")
	role := repo.seed("editor", "read:posts", "create:posts")
	svc := NewService(repo)

	updated, err := svc.UpdateRole(context.Background(), role.ID, "editor", "content team", []string{"delete:posts"})
	require.NoError(t, err)
	// Full replace, not merge: the earlier grants are gone.
	require.Equal(t, []string{"delete:posts"}, updated.Permissions)
}

func TestUpdateRoleSuperadminForbidden(t *testing.T) {
	repo := newMemoryRepo()
	role := repo.seed(rbac.RoleSuperadmin)
	svc := NewService(repo)

	// Even a no-op rename to its own name is refused.
	_, err := svc.UpdateRole(context.Background(), role.ID, rbac.RoleSuperadmin, "", nil)
	require.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.UpdateRole(context.Background(), role.ID, "root", "", nil)
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestDeleteRoleSuperadminForbidden(t *testing.T) {
	repo := newMemoryRepo()
	role := repo.seed(rbac.RoleSuperadmin)
	svc := NewService(repo)

	err := svc.DeleteRole(context.Background(), role.ID)
	require.ErrorIs(t, err, shared.ErrForbidden)
	_, getErr := repo.GetRole(context.Background(), role.ID)
	require.NoError(t, getErr)
}

func TestDeleteRoleCascadesAssociations(t *testing.T) {
	repo := newMemoryRepo("read:posts")
	role := repo.seed("editor", "read:posts")
	svc := NewService(repo)

	require.NoError(t, svc.DeleteRole(context.Background(), role.ID))
	require.Equal(t, []int64{role.ID}, repo.cleanupLog)
	_, err := repo.GetRole(context.Background(), role.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetRoleSuperadminShowsWildcard(t *testing.T) {
	repo := newMemoryRepo()
	role := repo.seed(rbac.RoleSuperadmin)
	svc := NewService(repo)

	got, err := svc.GetRole(context.Background(), role.ID)
	require.NoError(t, err)
	require.Equal(t, []string{rbac.WildcardPermission}, got.Permissions)
}

func TestListRolesAttachesPermissions(t *testing.T) {
	repo := newMemoryRepo("read:posts")
	repo.seed("viewer", "read:posts")
	repo.seed(rbac.RoleSuperadmin)
	svc := NewService(repo)

	list, err := svc.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, role := range list {
		if role.Name == rbac.RoleSuperadmin {
			require.Equal(t, []string{rbac.WildcardPermission}, role.Permissions)
		} else {
			require.Equal(t, []string{"read:posts"}, role.Permissions)
		}
	}
}
