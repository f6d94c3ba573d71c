package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "data", "client", "wealthwise.db")

	dir, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "data", "client"), dir)

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureParentDir_IsIdempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "x", "store.db")

	_, err := EnsureParentDir(target)
	require.NoError(t, err)
	_, err = EnsureParentDir(target)
	require.NoError(t, err)
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	dir, err := EnsureParentDir("wealthwise.db")
	require.NoError(t, err)
	require.Equal(t, ".", dir)
}

func TestEnsureParentDir_ErrorWhenParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "sub", "store.db"))
	require.Error(t, err)
}
