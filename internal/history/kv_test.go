package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKVMissingFile(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "none.json"))

	v, ok, err := kv.Get("gitbash.history")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestFileKVRoundTripKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dracula"}`), 0o600))

	kv := NewFileKV(path)
	require.NoError(t, kv.Set("gitbash.history", "ls\npwd"))

	v, ok, err := kv.Get("gitbash.history")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ls\npwd", v)

	theme, ok, err := kv.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dracula", theme)

	// #nosec G304 -- test file under t.TempDir()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"gitbash.history"`, "dotted key is stored as one member")
}

func TestFileKVSetReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	kv := NewFileKV(path)

	require.NoError(t, kv.Set("a", "1"))
	require.NoError(t, kv.Set("b", "2"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files left behind")
	assert.Equal(t, "history.json", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v, ok, err := kv.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestFileKVCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	kv := NewFileKV(path)
	_, _, err := kv.Get("k")
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, kv.Set("k", "v"), ErrCorrupt)
}

func TestMemKV(t *testing.T) {
	kv := NewMemKV()
	_, ok, _ := kv.Get("a")
	assert.False(t, ok)

	require.NoError(t, kv.Set("a", "1"))
	v, ok, err := kv.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
