package roles

import "time"

// Role represents a role for management, with its resolved permission names.
type Role struct {
	ID          int64
	Name        string
	Description string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
