package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	got, err := EnsureSubDir("exports")
	require.NoError(t, err)

	want := filepath.Join(tmp, "exports")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureSubDir_Idempotent(t *testing.T) {
	t.Chdir(t.TempDir())

	first, err := EnsureSubDir("exports")
	require.NoError(t, err)

	second, err := EnsureSubDir("exports")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureSubDir_FailsIfFileWithSameNameExists(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, os.WriteFile("exports", []byte("x"), 0o660))

	_, err := EnsureSubDir("exports")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestWriteInSubDir_UsesBaseName(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	path, err := WriteInSubDir("exports", "exports/u1/2023/abc.csv", []byte("a,b\n"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "exports", "abc.csv"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a,b\n", string(b))
}
