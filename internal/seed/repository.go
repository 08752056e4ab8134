package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements Store against PostgreSQL with upsert-style ensures.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsurePermission inserts the permission if absent. An existing row keeps
// its description; seeding never overwrites operator edits.
func (r *Repository) EnsurePermission(ctx context.Context, name, description string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO permissions (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		name, description)
	return err
}

// EnsureRole inserts the role if absent.
func (r *Repository) EnsureRole(ctx context.Context, name, description string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO roles (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		name, description)
	return err
}

// EnsureGrant links a role to a permission by name, if both exist.
func (r *Repository) EnsureGrant(ctx context.Context, roleName, permissionName string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO role_permissions (role_id, permission_id)
		 SELECT ro.id, p.id FROM roles ro, permissions p
		 WHERE ro.name = $1 AND p.name = $2
		 ON CONFLICT DO NOTHING`,
		roleName, permissionName)
	return err
}

// EnsureUser inserts the user if absent and reports whether a row was
// created.
func (r *Repository) EnsureUser(ctx context.Context, name, email, passwordHash string) (int64, bool, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row already existed; fetch its ID for completeness.
			err = r.pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
			return id, false, err
		}
		return 0, false, err
	}
	return id, true, nil
}

// EnsureUserRole assigns a role by name to the user.
func (r *Repository) EnsureUserRole(ctx context.Context, userID int64, roleName string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id)
		 SELECT $1, id FROM roles WHERE name = $2
		 ON CONFLICT DO NOTHING`,
		userID, roleName)
	return err
}

var _ Store = (*Repository)(nil)
