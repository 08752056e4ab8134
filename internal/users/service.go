package users

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pressgate/pressgate/internal/rbac"
	"github.com/pressgate/pressgate/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	CreateUser(ctx context.Context, name, email, passwordHash string) (User, error)
	UpdateUser(ctx context.Context, id int64, name, email, passwordHash *string) error
	DeleteUser(ctx context.Context, id int64) error
	RoleNames(ctx context.Context, userID int64) ([]string, error)
	ReplaceRoles(ctx context.Context, userID int64, roleNames []string) ([]string, error)
	DeleteUserRoles(ctx context.Context, userID int64) error
}

// Service handles user management. Accounts holding the superadmin role are
// immutable here regardless of the acting principal's own permissions.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListUsers returns all users with their role names.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	list, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		roleNames, err := s.repo.RoleNames(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		list[i].Roles = roleNames
		list[i].PasswordHash = ""
	}
	return list, nil
}

// GetUser fetches one user with roles, hash stripped.
func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	roleNames, err := s.repo.RoleNames(ctx, user.ID)
	if err != nil {
		return User{}, err
	}
	user.Roles = roleNames
	user.PasswordHash = ""
	return user, nil
}

// CreateUser registers a new account and assigns the given roles. Role
// names that do not resolve are skipped. Duplicate emails surface as
// shared.ErrConflict.
func (s *Service) CreateUser(ctx context.Context, name, email, password string, roleNames []string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return User{}, fmt.Errorf("%w: name and email required", shared.ErrInvalid)
	}
	if len(password) < 6 {
		return User{}, fmt.Errorf("%w: password must be at least 6 characters", shared.ErrInvalid)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	user, err := s.repo.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		return User{}, err
	}
	applied, err := s.repo.ReplaceRoles(ctx, user.ID, roleNames)
	if err != nil {
		return User{}, err
	}
	user.Roles = applied
	user.PasswordHash = ""
	return user, nil
}

// UpdateUser applies a partial profile update and fully replaces the user's
// role assignments. Roles must be present: an omitted list is rejected, only
// an explicit empty list clears all assignments.
func (s *Service) UpdateUser(ctx context.Context, id int64, input UpdateInput) (User, error) {
	if input.Roles == nil {
		return User{}, fmt.Errorf("%w: roles required", shared.ErrInvalid)
	}
	if err := s.guardSuperadminTarget(ctx, id); err != nil {
		return User{}, err
	}
	var hash *string
	if input.Password != nil {
		if len(*input.Password) < 6 {
			return User{}, fmt.Errorf("%w: password must be at least 6 characters", shared.ErrInvalid)
		}
		h, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		hashed := string(h)
		hash = &hashed
	}
	if input.Name != nil || input.Email != nil || hash != nil {
		if err := s.repo.UpdateUser(ctx, id, input.Name, input.Email, hash); err != nil {
			return User{}, err
		}
	}
	if _, err := s.repo.ReplaceRoles(ctx, id, input.Roles); err != nil {
		return User{}, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes an account and cascades its role assignments.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.guardSuperadminTarget(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteUserRoles(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}

// guardSuperadminTarget refuses mutation of any account currently holding
// the superadmin role.
func (s *Service) guardSuperadminTarget(ctx context.Context, id int64) error {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return err
	}
	roleNames, err := s.repo.RoleNames(ctx, id)
	if err != nil {
		return err
	}
	for _, name := range roleNames {
		if name == rbac.RoleSuperadmin {
			return fmt.Errorf("%w: accounts holding %s cannot be modified or deleted", shared.ErrForbidden, rbac.RoleSuperadmin)
		}
	}
	return nil
}
