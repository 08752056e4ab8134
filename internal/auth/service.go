package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pressgate/pressgate/internal/rbac"
	"github.com/pressgate/pressgate/internal/shared"
)

// dummyHash is compared against when the email is unknown so both failure
// paths perform one bcrypt verification. Hash of an unguessable throwaway.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates email/password credentials and materializes the
// principal's role list. Unknown email and wrong password are
// indistinguishable: the same error, after the same hash comparison work.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Principal, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	roleNames, err := s.repo.RoleNamesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(roleNames) == 0 {
		// Implicit default, resolved at authentication time rather than
		// persisted, so a future default change never reads stale rows.
		roleNames = []string{rbac.RoleViewer}
	}
	return &Principal{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   roleNames[0],
		Roles:  roleNames,
	}, nil
}

// Register creates a self-service account with no role assignments; such
// accounts authenticate as viewer until an admin grants roles.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email required", shared.ErrInvalid)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", shared.ErrInvalid)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, name, email, string(hash))
}

// RegisterSession persists the session metadata in postgres.
func (s *Service) RegisterSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, userID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
