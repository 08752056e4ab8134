package rbac

import (
	"sort"
	"time"
)

// Reserved role names. RoleSuperadmin is immutable and resolves to every
// permission; RoleViewer is assumed for users without any assignment.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleViewer     = "viewer"
)

// WildcardPermission is the display form of the unrestricted permission set.
const WildcardPermission = "*"

// Role represents a named permission grouping.
type Role struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission represents an atomic capability in action:resource form.
type Permission struct {
	ID          int64
	Name        string
	Description string
}

// Assignment ties a permission to a role.
type Assignment struct {
	RoleID       int64
	PermissionID int64
	CreatedAt    time.Time
}

// UserRole links a user to a role.
type UserRole struct {
	UserID    int64
	RoleID    int64
	CreatedAt time.Time
}

// PermissionSet is the effective permission set of one or more roles.
// Unrestricted is a dedicated variant instead of a "*" member so membership
// checks cannot be fooled by a literal wildcard string stored as data.
type PermissionSet struct {
	unrestricted bool
	members      map[string]struct{}
}

// NewPermissionSet builds a set from the given permission names.
func NewPermissionSet(names ...string) PermissionSet {
	members := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		members[n] = struct{}{}
	}
	return PermissionSet{members: members}
}

// Unrestricted returns the universal permission set.
func Unrestricted() PermissionSet {
	return PermissionSet{unrestricted: true}
}

// IsUnrestricted reports whether the set grants everything.
func (s PermissionSet) IsUnrestricted() bool {
	return s.unrestricted
}

// Has reports membership. The unrestricted set contains every string,
// including malformed permission names.
func (s PermissionSet) Has(name string) bool {
	if s.unrestricted {
		return true
	}
	_, ok := s.members[name]
	return ok
}

// Union combines two sets. Unrestricted absorbs everything.
func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	if s.unrestricted || other.unrestricted {
		return Unrestricted()
	}
	members := make(map[string]struct{}, len(s.members)+len(other.members))
	for n := range s.members {
		members[n] = struct{}{}
	}
	for n := range other.members {
		members[n] = struct{}{}
	}
	return PermissionSet{members: members}
}

// Len returns the number of members. Unrestricted has no meaningful length
// and reports zero.
func (s PermissionSet) Len() int {
	return len(s.members)
}

// Names returns the members sorted for stable output. The unrestricted set
// renders as the single wildcard entry.
func (s PermissionSet) Names() []string {
	if s.unrestricted {
		return []string{WildcardPermission}
	}
	names := make([]string, 0, len(s.members))
	for n := range s.members {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
