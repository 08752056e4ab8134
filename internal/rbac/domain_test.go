package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermissionSetMembership(t *testing.T) {
	set := NewPermissionSet("read:posts", "update:posts", "")

	require.True(t, set.Has("read:posts"))
	require.True(t, set.Has("update:posts"))
	require.False(t, set.Has("delete:posts"))
	require.False(t, set.Has(""))
	require.Equal(t, 2, set.Len())
	require.False(t, set.IsUnrestricted())
}

func TestPermissionSetUnrestricted(t *testing.T) {
	set := Unrestricted()

	require.True(t, set.IsUnrestricted())
	require.True(t, set.Has("read:posts"))
	require.True(t, set.Has("not-a-permission"))
	require.True(t, set.Has(""))
	require.Equal(t, []string{WildcardPermission}, set.Names())
}

func TestPermissionSetUnion(t *testing.T) {
	a := NewPermissionSet("read:posts", "create:posts")
	b := NewPermissionSet("read:posts", "read:users")

	union := a.Union(b)
	require.Equal(t, []string{"create:posts", "read:posts", "read:users"}, union.Names())

	// Originals stay untouched.
	require.Equal(t, 2, a.Len())
	require.Equal(t, 2, b.Len())
}

func TestPermissionSetUnionAbsorbsUnrestricted(t *testing.T) {
	a := NewPermissionSet("read:posts")

	require.True(t, a.Union(Unrestricted()).IsUnrestricted())
	require.True(t, Unrestricted().Union(a).IsUnrestricted())
}

func TestPermissionSetNamesSorted(t *testing.T) {
	set := NewPermissionSet("update:users", "create:posts", "delete:roles")
	require.Equal(t, []string{"create:posts", "delete:roles", "update:users"}, set.Names())
}
