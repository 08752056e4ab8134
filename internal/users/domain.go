package users

import "time"

// User represents a user account for management. PasswordHash never leaves
// the service layer.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpdateInput carries a partial profile update. Nil pointer fields stay
// untouched. Roles fully replaces the assignment set and must be non-nil;
// an empty slice clears every assignment.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Roles    []string
}
