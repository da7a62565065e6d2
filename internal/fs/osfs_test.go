package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFSExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	o := New()

	ok, err := o.Exists(file)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = o.Exists(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = o.Exists(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = o.Exists(filepath.Join(dir, "missing", "deeper.txt"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOSFSStat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))

	fi, err := New().Stat(file)
	require.NoError(t, err)
	assert.Equal(t, file, fi.Path)
	assert.Equal(t, int64(5), fi.Size)
	assert.True(t, fi.IsRegular())
	assert.False(t, fi.IsDir())
	assert.False(t, fi.MTime.IsZero())

	di, err := New().Stat(dir)
	require.NoError(t, err)
	assert.True(t, di.IsDir())
}

func TestOSFSStatIdentityThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Symlink(target, link))

	o := New()
	a, err := o.Stat(target)
	require.NoError(t, err)
	b, err := o.Stat(link)
	require.NoError(t, err)

	assert.False(t, a.ID.IsZero())
	assert.Equal(t, a.ID, b.ID)
}

func TestOSFSRemoveAndMkdirAll(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "x", "y", "z")
	o := New()

	require.NoError(t, o.MkdirAll(nested))
	require.NoError(t, o.MkdirAll(nested))

	file := filepath.Join(nested, "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	require.NoError(t, o.Remove(file))

	err := o.Remove(file)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
