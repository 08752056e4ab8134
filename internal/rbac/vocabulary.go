package rbac

import "strings"

// actions is the fixed verb vocabulary. Resources may grow through
// configuration but the action list never changes.
var actions = []string{"create", "read", "update", "delete"}

// defaultResources matches the seeded permission catalogue.
var defaultResources = []string{"users", "posts", "roles", "permissions"}

// protectedResources are the resources whose permissions guard the RBAC
// model itself. Every action:resource combination over them is protected.
var protectedResources = []string{"users", "roles", "permissions"}

// Vocabulary is the permission-name grammar: action:resource with both parts
// drawn from closed lists. It is loaded once at startup and immutable
// afterwards; validation and option rendering share the same value.
type Vocabulary struct {
	actions   []string
	resources []string
}

// NewVocabulary builds a vocabulary over the given resources. An empty list
// falls back to the default resource set.
func NewVocabulary(resources []string) Vocabulary {
	cleaned := make([]string, 0, len(resources))
	for _, r := range resources {
		r = strings.TrimSpace(strings.ToLower(r))
		if r != "" {
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, defaultResources...)
	}
	return Vocabulary{actions: actions, resources: cleaned}
}

// DefaultVocabulary returns the vocabulary over the standard four resources.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(nil)
}

// Actions returns a copy of the action vocabulary.
func (v Vocabulary) Actions() []string {
	return append([]string(nil), v.actions...)
}

// Resources returns a copy of the resource vocabulary.
func (v Vocabulary) Resources() []string {
	return append([]string(nil), v.resources...)
}

// SplitName splits an action:resource permission name. It only checks shape,
// not vocabulary membership.
func SplitName(name string) (action, resource string, ok bool) {
	parts := strings.Split(name, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// ValidName reports whether name is a well-formed permission against the
// current vocabulary.
func (v Vocabulary) ValidName(name string) bool {
	action, resource, ok := SplitName(name)
	if !ok {
		return false
	}
	return contains(v.actions, action) && contains(v.resources, resource)
}

// ProtectedPermissions lists the permission names that may never be renamed
// or deleted.
func ProtectedPermissions() []string {
	names := make([]string, 0, len(actions)*len(protectedResources))
	for _, resource := range protectedResources {
		for _, action := range actions {
			names = append(names, action+":"+resource)
		}
	}
	return names
}

// IsProtected reports whether name belongs to the protected permission set.
func IsProtected(name string) bool {
	action, resource, ok := SplitName(name)
	if !ok {
		return false
	}
	return contains(actions, action) && contains(protectedResources, resource)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
