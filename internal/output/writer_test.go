package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMirrorsRelativePath(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)

	dest, err := w.Write(filepath.Join("units", "tank.ini"), []byte("[核心]\n"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Root(), "units", "tank.ini"), dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "[核心]\n", string(data))

	dest, err = w.Write(filepath.Join("units", "tank.ini"), []byte("[core]\n"))
	require.NoError(t, err)
	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "[core]\n", string(data))
}

func TestPathRejectsEscapes(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	for _, rel := range []string{"", ".", "..", "../x.ini", "/etc/x.ini", "a/../../x.ini"} {
		_, err := w.Path(rel)
		assert.ErrorIs(t, err, ErrPathInvalid, rel)
	}

	p, err := w.Path("a/../b.ini")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Root(), "b.ini"), p)
}

func TestFailedWriteLeavesNoTemporaryFiles(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)
	blocker := filepath.Join(w.Root(), "tank.ini")
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "occupied"), 0o755))

	_, err = w.Write("tank.ini", []byte("data"))

	require.Error(t, err)
	entries, err := os.ReadDir(w.Root())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tank.ini", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestNewFailsWhenRootIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := New(file)
	assert.Error(t, err)
}
