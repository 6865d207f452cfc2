package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate gives the test a fresh sink and puts the previous one back after.
func isolate(t *testing.T) {
	t.Helper()

	out.mu.Lock()
	prevFile, prevPending, prevOff := out.file, out.pending, out.off
	out.file, out.pending, out.off = nil, nil, false
	out.mu.Unlock()

	t.Cleanup(func() {
		out.mu.Lock()
		defer out.mu.Unlock()
		_ = out.closeFile()
		out.file, out.pending, out.off = prevFile, prevPending, prevOff
	})
}

func pendingLen() int {
	out.mu.Lock()
	defer out.mu.Unlock()
	return len(out.pending)
}

func TestSetFileWritesHeldLines(t *testing.T) {
	isolate(t)

	Printf("before %s", "file")
	For("session=abc").Printf("ran %q", "ls")

	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetFile(path))
	Println("after file")
	For("session=abc").With("dispatch").Printf("done")
	require.NoError(t, Close())

	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)
	for _, want := range []string{"before file", `[session=abc] ran "ls"`, "after file", "[session=abc] [dispatch] done"} {
		assert.Contains(t, string(data), want)
	}
	assert.Zero(t, pendingLen())
}

func TestSetFileEmptyTurnsLoggingOff(t *testing.T) {
	isolate(t)

	Printf("pending")
	require.NoError(t, SetFile(""))
	Printf("dropped")

	assert.Zero(t, pendingLen())
	assert.NoError(t, Close())
}

func TestPendingIsBounded(t *testing.T) {
	isolate(t)

	line := strings.Repeat("x", 1024)
	for range 2 * maxPending / len(line) {
		Println(line)
	}
	Printf("last line")

	assert.LessOrEqual(t, pendingLen(), maxPending)

	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetFile(path))
	require.NoError(t, Close())

	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), "last line"))
}

func TestSetFileFailureTurnsLoggingOff(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	isolate(t)

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))       //nolint:gosec
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) }) //nolint:gosec

	err := SetFile(filepath.Join(dir, "debug.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open debug log")

	out.mu.Lock()
	off := out.off
	out.mu.Unlock()
	assert.True(t, off)
}
