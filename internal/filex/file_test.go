package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDataDir_RelativeCreatedInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDataDir(".casiec")
	require.NoError(t, err)

	want := filepath.Join(tmp, ".casiec")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	again, err := EnsureDataDir(".casiec")
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureDataDir_Absolute(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	got, err := EnsureDataDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got)
}

func TestEnsureDataDir_FailsOnFile(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("data", []byte("x"), 0o660))

	_, err := EnsureDataDir("data")
	require.Error(t, err)
}

func TestResolveIn(t *testing.T) {
	require.Equal(t, filepath.Join("/var/casiec", "casiec.db"), ResolveIn("/var/casiec", "casiec.db"))
	require.Equal(t, "/tmp/x.db", ResolveIn("/var/casiec", "/tmp/x.db"))
}
