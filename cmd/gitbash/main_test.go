package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/gitbash/internal/config"
	"github.com/chmouel/gitbash/internal/history"
	"github.com/chmouel/gitbash/internal/session"
	"github.com/chmouel/gitbash/internal/term"
	"github.com/chmouel/gitbash/internal/vfs"
)

func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("NO_COLOR", "")
	return base
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.Writer = &out
	root.ErrWriter = &out
	root.Reader = strings.NewReader(stdin)
	err := root.Run(context.Background(), append([]string{"gitbash"}, args...))
	return out.String(), err
}

func TestRunSubcommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "--no-color", "run", "mkdir proj", "cd proj", "git init", "git add .", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "Initialized empty Git repository in /Users/Public/proj/.git/\n"+
		"Todos los archivos agregados al área de staging.\n"+
		"/Users/Public/proj\n", out)
}

func TestRunSubcommandReadsStdin(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "echo one\nfoobar\nexit\necho never\n", "--no-color", "run")
	require.NoError(t, err)
	assert.Equal(t, "one\nfoobar: comando no encontrado\n", out)
}

func TestRunSubcommandKeepsColor(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "--home", "/h", "-C", "gb.seed=docs/", "run", "ls")
	require.NoError(t, err)
	assert.Equal(t, "\x1b[34mdocs\x1b[0m\n", out)
}

func TestRunSubcommandRecordsHistory(t *testing.T) {
	base := isolate(t)

	_, err := runCLI(t, "", "--no-color", "run", "pwd", "ls")
	require.NoError(t, err)
	out, err := runCLI(t, "", "--no-color", "run", "history")
	require.NoError(t, err)

	assert.Equal(t, "    1  pwd\n    2  ls\n    3  history\n", out)
	_, err = os.Stat(filepath.Join(base, "data", "gitbash", "history.json"))
	assert.NoError(t, err)
}

func TestRunSubcommandWithRoot(t *testing.T) {
	base := isolate(t)
	root := filepath.Join(base, "fs")

	_, err := runCLI(t, "", "--root", root, "--home", "/home/u", "run", "touch a.txt")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "home", "u", "a.txt"))
	assert.NoError(t, err)
}

func TestUnknownThemeFails(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "", "--theme", "neon", "run", "pwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}

func TestBadOverrideFails(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "", "-C", "home=/x", "run", "pwd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error applying config overrides")
}

func TestThemesCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "themes")
	require.NoError(t, err)
	assert.Equal(t, "gitbash\ndracula\nnord\nsolarized-light\n", out)
}

func TestOverridesBeatFlagsAndFile(t *testing.T) {
	base := isolate(t)
	dir := filepath.Join(base, "config", "gitbash")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("home: /from/file\n"), 0o600))

	out, err := runCLI(t, "", "--no-color", "--home", "/from/flag", "-C", "gb.home=/from/override", "run", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "/from/override\n", out)

	out, err = runCLI(t, "", "--no-color", "--home", "/from/flag", "run", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag\n", out)

	out, err = runCLI(t, "", "--no-color", "run", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "/from/file\n", out)
}

type fakeReader struct {
	lines   []string
	prompts []string
}

func (f *fakeReader) SetPrompt(prompt string) { f.prompts = append(f.prompts, prompt) }

func (f *fakeReader) Readline() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func TestReplLoop(t *testing.T) {
	cfg := config.DefaultConfig()
	store := vfs.NewMemStore()
	require.NoError(t, store.Seed(cfg.Home, nil))
	hist := history.NewStore(history.NewMemKV(), 0)
	out := term.NewBuffer(0)
	sess := newPlainSession(cfg, store, hist, out)

	rl := &fakeReader{lines: []string{"mkdir docs", "cd docs", "exit", "pwd"}}
	require.NoError(t, replLoop(context.Background(), sess, rl, false))

	assert.Equal(t, []string{"Welcome to Git Bash", ""}, out.PlainLines())
	assert.Equal(t, []string{"user@winsim:~$ ", "user@winsim:~$ ", "user@winsim:~/docs$ "}, rl.prompts)
	assert.True(t, sess.Closed())
	lines, err := hist.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"mkdir docs", "cd docs", "exit"}, lines)
}

func TestReplLoopStopsAtEOF(t *testing.T) {
	cfg := config.DefaultConfig()
	store := vfs.NewMemStore()
	require.NoError(t, store.Seed(cfg.Home, nil))
	sess := session.New(session.Options{Store: store, Out: term.NewBuffer(0), Home: cfg.Home})

	rl := &fakeReader{lines: []string{"pwd"}}
	require.NoError(t, replLoop(context.Background(), sess, rl, true))
	assert.False(t, sess.Closed())
	assert.Len(t, rl.prompts, 2)
	assert.Equal(t, sess.Prompt(), rl.prompts[0])
}

func TestScannerReader(t *testing.T) {
	var out bytes.Buffer
	r := newScannerReader(strings.NewReader("a\nb\n"), &out)
	r.SetPrompt("$ ")

	line, err := r.Readline()
	require.NoError(t, err)
	assert.Equal(t, "a", line)
	line, err = r.Readline()
	require.NoError(t, err)
	assert.Equal(t, "b", line)
	_, err = r.Readline()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "$ $ $ ", out.String())
}

func TestNewCompleter(t *testing.T) {
	c := newCompleter()
	names := make([]string, 0, len(c.Children))
	for _, child := range c.Children {
		names = append(names, strings.TrimSpace(string(child.GetName())))
	}
	assert.Contains(t, names, "git")
	assert.Contains(t, names, "history")
	assert.Len(t, names, 16)
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "gitbash version "), out)
}
