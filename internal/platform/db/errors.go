package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pressgate/pressgate/internal/shared"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// MapConstraintError translates a PostgreSQL unique violation into
// shared.ErrConflict. Duplicate names and duplicate association pairs rely
// on unique indexes, so the second of two concurrent inserts rejects here
// instead of silently duplicating.
func MapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return shared.ErrConflict
	}
	return err
}
