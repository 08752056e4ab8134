package auth

import "time"

// User represents an authenticated user account.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal describes the authenticated actor handed to session issuance.
// Role is the first entry of Roles, kept for legacy single-role consumers;
// the assignment order the store returns is not guaranteed stable, so
// nothing security-relevant may depend on which role lands first.
type Principal struct {
	UserID int64
	Name   string
	Email  string
	Role   string
	Roles  []string
}
