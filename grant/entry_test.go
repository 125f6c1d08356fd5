package grant

import (
	"os"
	"os/user"
	"testing"

	acl "github.com/joshlf/go-acl"
	"github.com/stretchr/testify/require"
)

// fakeLookups substitutes an identity store containing exactly the user
// alice (uid 1000) and the group staff (gid 50).
func fakeLookups(t *testing.T) {
	t.Helper()
	origUser, origGroup := LookupUser, LookupGroup
	LookupUser = func(name string) (*user.User, error) {
		if name == "alice" {
			return &user.User{Uid: "1000", Username: "alice"}, nil
		}
		return nil, user.UnknownUserError(name)
	}
	LookupGroup = func(name string) (*user.Group, error) {
		if name == "staff" {
			return &user.Group{Gid: "50", Name: "staff"}, nil
		}
		return nil, user.UnknownGroupError(name)
	}
	t.Cleanup(func() { LookupUser, LookupGroup = origUser, origGroup })
}

func TestValidPerms(t *testing.T) {
	valid := []string{"r", "rX", "rwX", "r-x", "rwx", "---", "tTX", "w"}
	for _, s := range valid {
		require.True(t, ValidPerms(s), "expected %q to be valid", s)
	}
	invalid := []string{"", "rq", "rwxX", "R", "r w", "rwx "}
	for _, s := range invalid {
		require.False(t, ValidPerms(s), "expected %q to be invalid", s)
	}
}

func TestModeFor(t *testing.T) {
	tests := []struct {
		perms string
		isDir bool
		mode  os.FileMode
		want  os.FileMode
	}{
		{"rwX", true, 0750, 7},
		{"rwX", false, 0644, 6}, // X does not grant execute on a plain file
		{"rwX", false, 0755, 7}, // unless an execute bit is already set
		{"rX", true, 0, 5},
		{"r-x", false, 0644, 5}, // lowercase x is unconditional
		{"tTr", false, 0644, 4}, // sticky letters carry no ACL bits
		{"---", true, 0755, 0},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ModeFor(tc.perms, tc.isDir, tc.mode),
			"perms=%q isDir=%v mode=%o", tc.perms, tc.isDir, tc.mode)
	}
}

func TestEntryResolve(t *testing.T) {
	fakeLookups(t)

	e := Entry{Kind: KindUser, Name: "alice", Perms: "rwX"}
	require.NoError(t, e.Resolve())
	require.Equal(t, "1000", e.ID)

	g := Entry{Kind: KindGroup, Name: "staff", Perms: "r-x"}
	require.NoError(t, g.Resolve())
	require.Equal(t, "50", g.ID)

	unknown := Entry{Kind: KindUser, Name: "bob", Perms: "rwX"}
	require.Error(t, unknown.Resolve())
}

func TestEntryResolve_BaseEntriesSkipLookup(t *testing.T) {
	fakeLookups(t)

	mask := Entry{Kind: KindMask, Perms: "rwx"}
	require.NoError(t, mask.Resolve())
	require.Empty(t, mask.ID)
}

func TestACLEntryConversion(t *testing.T) {
	fakeLookups(t)

	e := Entry{Kind: KindUser, Name: "alice", Perms: "rwX"}
	require.NoError(t, e.Resolve())

	dir := e.aclEntry(true, 0750)
	require.Equal(t, acl.Tag(acl.TagUser), dir.Tag)
	require.Equal(t, "1000", dir.Qualifier)
	require.Equal(t, os.FileMode(7), dir.Perms)

	file := e.aclEntry(false, 0644)
	require.Equal(t, os.FileMode(6), file.Perms)

	mask := Entry{Kind: KindMask, Perms: "rwx"}
	converted := mask.aclEntry(true, 0)
	require.Equal(t, acl.Tag(acl.TagMask), converted.Tag)
	require.Empty(t, converted.Qualifier)
}
