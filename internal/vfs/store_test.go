package vfs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/gitbash/internal/models"
)

const testHome = "/Users/Public"

func newSeededStore(t *testing.T, entries ...string) *AferoStore {
	t.Helper()
	s := NewMemStore()
	require.NoError(t, s.Seed(testHome, entries))
	return s
}

func TestReadDir(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t, "docs/", "notes.txt")

	entries, err := s.ReadDir(ctx, testHome)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Entry{
		{Name: "docs", IsDir: true},
		{Name: "notes.txt", IsDir: false},
	}, entries)

	_, err = s.ReadDir(ctx, testHome+"/missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.ReadDir(ctx, testHome+"/notes.txt")
	assert.True(t, errors.Is(err, ErrNotFound), "files are not listable")
}

func TestMkdirAndExists(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	require.NoError(t, s.Mkdir(ctx, testHome+"/proj"))
	assert.True(t, s.Exists(ctx, testHome+"/proj"))

	err := s.Mkdir(ctx, testHome+"/proj")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file already exists")

	err = s.Mkdir(ctx, testHome+"/nope/child")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWriteReadUnlink(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t, "docs/")
	file := testHome + "/a.txt"

	require.NoError(t, s.WriteFile(ctx, file, []byte("hello")))
	data, err := s.ReadFile(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, s.WriteFile(ctx, file, nil))
	data, err = s.ReadFile(ctx, file)
	require.NoError(t, err)
	assert.Empty(t, data, "write overwrites")

	_, err = s.ReadFile(ctx, testHome+"/docs")
	assert.True(t, errors.Is(err, ErrNotFound), "directories cannot be read")

	err = s.WriteFile(ctx, testHome+"/docs", []byte("x"))
	assert.True(t, errors.Is(err, ErrIsDir))

	require.NoError(t, s.Unlink(ctx, file))
	assert.False(t, s.Exists(ctx, file))
	assert.True(t, errors.Is(s.Unlink(ctx, file), ErrNotFound))
	assert.True(t, errors.Is(s.Unlink(ctx, testHome+"/docs"), ErrIsDir))
}

func TestLstat(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t, "docs/", "notes.txt=hi")

	info, err := s.Lstat(ctx, testHome+"/docs")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = s.Lstat(ctx, testHome+"/notes.txt")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.EqualValues(t, 2, info.Size())

	_, err = s.Lstat(ctx, testHome+"/ghost")
	assert.True(t, IsNotFound(err))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newSeededStore(t)

	assert.False(t, s.Exists(ctx, testHome))
	assert.ErrorIs(t, s.Mkdir(ctx, testHome+"/x"), context.Canceled)
	_, err := s.ReadDir(ctx, testHome)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeedKeepsExistingFiles(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Fs().MkdirAll(testHome, 0o755))
	require.NoError(t, afero.WriteFile(s.Fs(), testHome+"/keep.txt", []byte("mine"), 0o644))

	require.NoError(t, s.Seed(testHome, []string{"keep.txt=theirs", "sub/dir/", "sub/file.md=# title", " "}))

	data, err := afero.ReadFile(s.Fs(), testHome+"/keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))

	ok, err := afero.DirExists(s.Fs(), testHome+"/sub/dir")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err = afero.ReadFile(s.Fs(), testHome+"/sub/file.md")
	require.NoError(t, err)
	assert.Equal(t, "# title", string(data))
}

func TestOSStore(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "root")

	s, err := NewOSStore(root)
	require.NoError(t, err)
	require.NoError(t, s.Seed(testHome, nil))
	require.NoError(t, s.WriteFile(ctx, testHome+"/disk.txt", []byte("on disk")))

	ok, err := afero.Exists(afero.NewOsFs(), filepath.Join(root, "Users", "Public", "disk.txt"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = NewOSStore("")
	assert.Error(t, err)
}
