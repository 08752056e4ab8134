package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pressgate/pressgate/internal/rbac"
	"github.com/pressgate/pressgate/internal/shared"
)

type memoryRepo struct {
	users    map[string]*User
	roles    map[int64][]string
	sessions map[string]int64
	nextID   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		users:    make(map[string]*User),
		roles:    make(map[int64][]string),
		sessions: make(map[string]int64),
	}
}

func (r *memoryRepo) seed(t *testing.T, name, email, password string, roles ...string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	r.nextID++
	user := &User{ID: r.nextID, Name: name, Email: email, PasswordHash: string(hash)}
	r.users[email] = user
	r.roles[user.ID] = roles
	return user
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *memoryRepo) RoleNamesForUser(ctx context.Context, userID int64) ([]string, error) {
	return append([]string(nil), r.roles[userID]...), nil
}

func (r *memoryRepo) CreateUser(ctx context.Context, name, email, passwordHash string) (*User, error) {
	if _, exists := r.users[email]; exists {
		return nil, shared.ErrConflict
	}
	r.nextID++
	user := &User{ID: r.nextID, Name: name, Email: email, PasswordHash: passwordHash}
	r.users[email] = user
	return user, nil
}

func (r *memoryRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	r.sessions[id] = userID
	return nil
}

func (r *memoryRepo) DeleteSession(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(t, "Ada", "ada@example.com", "s3cret!", "editor", "viewer")
	svc := NewService(repo)

	principal, err := svc.Authenticate(context.Background(), "ada@example.com", "s3cret!")
	require.NoError(t, err)
	require.Equal(t, "Ada", principal.Name)
	require.Equal(t, []string{"editor", "viewer"}, principal.Roles)
	require.Equal(t, "editor", principal.Role)
}

func TestAuthenticateFailureModesIndistinguishable(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(t, "Ada", "ada@example.com", "s3cret!")
	svc := NewService(repo)
	ctx := context.Background()

	_, unknownErr := svc.Authenticate(ctx, "nobody@example.com", "whatever")
	_, wrongErr := svc.Authenticate(ctx, "ada@example.com", "wrong")

	require.ErrorIs(t, unknownErr, shared.ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, shared.ErrInvalidCredentials)
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthenticateDefaultsToViewer(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(t, "Newbie", "new@example.com", "s3cret!")
	svc := NewService(repo)

	principal, err := svc.Authenticate(context.Background(), "new@example.com", "s3cret!")
	require.NoError(t, err)
	require.Equal(t, []string{rbac.RoleViewer}, principal.Roles)
	require.Equal(t, rbac.RoleViewer, principal.Role)
}

func TestRegisterCreatesAccountWithoutRoles(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cret!")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Empty(t, repo.roles[user.ID])
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "ada@example.com", "s3cret!")
	require.ErrorIs(t, err, shared.ErrInvalid)

	_, err = svc.Register(ctx, "Ada", "ada@example.com", "tiny")
	require.ErrorIs(t, err, shared.ErrInvalid)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed(t, "Ada", "ada@example.com", "s3cret!")
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "Other", "ada@example.com", "s3cret!")
	require.ErrorIs(t, err, shared.ErrConflict)
}

func TestSessionLifecycle(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RegisterSession(ctx, "sess-1", 7, time.Now().Add(time.Hour), "127.0.0.1", "test"))
	require.Equal(t, int64(7), repo.sessions["sess-1"])
	require.NoError(t, svc.RemoveSession(ctx, "sess-1"))
	require.NotContains(t, repo.sessions, "sess-1")
}
