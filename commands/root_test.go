package commands

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_RejectsBadArgCount(t *testing.T) {
	for _, args := range [][]string{{}, {"/srv/data"}, {"/a", "/b", "/c", "/d"}} {
		root := NewRootCmd()
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		root.SetArgs(args)
		require.Error(t, root.Execute(), "args: %v", args)
	}
}

func TestRootCmd_KindFlagSpellings(t *testing.T) {
	root := NewRootCmd()
	require.NoError(t, root.Flags().Set("kind", "group"))
	require.NoError(t, root.Flags().Set("kind", "U"))
	require.Error(t, root.Flags().Set("kind", "mask"))
}
