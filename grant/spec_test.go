package grant

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestBuildSingle_DefaultChoice(t *testing.T) {
	fakeLookups(t)

	e := Entry{Kind: KindUser, Name: "alice", Perms: DefaultPerms}
	require.NoError(t, e.Resolve())

	spec := BuildSingle(e)
	require.Len(t, spec.Full, 1)
	require.Equal(t, "rwX", spec.Full[0].Perms)
	require.Len(t, spec.Traverse, 1)
	require.Equal(t, "rX", spec.Traverse[0].Perms)
	require.Equal(t, "alice", spec.Traverse[0].Name)
	require.Equal(t, "1000", spec.Traverse[0].ID)
}

// The traverse set is always rX while the full set keeps the description's
// permissions verbatim; mask entries ride along in the full set but never
// produce a traverse entry.
func TestBuildFromFile(t *testing.T) {
	fakeLookups(t)
	fs := afero.NewMemMapFs()
	content := `# grants for the reports share
u:alice:rwx
g:staff:r-x

m::rwx
default:u:alice:rwx
`
	require.NoError(t, afero.WriteFile(fs, "/tmp/grants.acl", []byte(content), 0640))

	spec, err := BuildFromFile(fs, "/tmp/grants.acl")
	require.NoError(t, err)

	require.Len(t, spec.Full, 3)
	require.Equal(t, "rwx", spec.Full[0].Perms)
	require.Equal(t, "r-x", spec.Full[1].Perms)
	require.Equal(t, KindMask, spec.Full[2].Kind)

	require.Len(t, spec.Traverse, 2)
	for _, e := range spec.Traverse {
		require.Equal(t, "rX", e.Perms)
	}
	require.Equal(t, "alice", spec.Traverse[0].Name)
	require.Equal(t, "staff", spec.Traverse[1].Name)
}

func TestBuildFromFile_Missing(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := BuildFromFile(fs, "/tmp/nope.acl")
	require.Error(t, err)
}

func TestBuildFromFile_BadPerms(t *testing.T) {
	fakeLookups(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/grants.acl", []byte("u:alice:rq\n"), 0640))

	_, err := BuildFromFile(fs, "/tmp/grants.acl")
	require.ErrorIs(t, err, ErrBadPerms)
	require.Contains(t, err.Error(), ":1:")
}

func TestBuildFromFile_UnknownPrincipal(t *testing.T) {
	fakeLookups(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/grants.acl", []byte("u:bob:rwx\n"), 0640))

	_, err := BuildFromFile(fs, "/tmp/grants.acl")
	require.Error(t, err)
	require.Contains(t, err.Error(), "bob")
}

func TestParseEntry(t *testing.T) {
	fakeLookups(t)

	e, err := ParseEntry("u:alice:rwx")
	require.NoError(t, err)
	require.Equal(t, KindUser, e.Kind)
	require.Equal(t, "1000", e.ID)

	_, err = ParseEntry("q:alice:rwx")
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseEntry("u:alice")
	require.Error(t, err)

	_, err = ParseEntry("m:alice:rwx")
	require.Error(t, err)
}
