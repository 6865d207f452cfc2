package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/chzyer/readline"

	"github.com/chmouel/gitbash/internal/config"
	"github.com/chmouel/gitbash/internal/history"
	"github.com/chmouel/gitbash/internal/log"
	"github.com/chmouel/gitbash/internal/session"
	"github.com/chmouel/gitbash/internal/shell"
	"github.com/chmouel/gitbash/internal/term"
	"github.com/chmouel/gitbash/internal/vfs"
)

// lineReader is the part of *readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// scannerReader reads lines without editing support. It backs `run` and
// the fallback when readline cannot start.
type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func newScannerReader(in io.Reader, out io.Writer) *scannerReader {
	return &scannerReader{scanner: bufio.NewScanner(in), out: out}
}

func (s *scannerReader) SetPrompt(prompt string) {
	s.prompt = prompt
}

func (s *scannerReader) Readline() (string, error) {
	if s.out != nil && s.prompt != "" {
		_, _ = io.WriteString(s.out, s.prompt)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// newCompleter offers the built-in names and git subcommands.
func newCompleter() *readline.PrefixCompleter {
	completer := readline.NewPrefixCompleter()
	for _, name := range shell.Names() {
		if name == shell.KindGit.String() {
			completer.Children = append(completer.Children, readline.PcItem(name,
				readline.PcItem("--version"),
				readline.PcItem("init"),
				readline.PcItem("add", readline.PcItem(".")),
			))
			continue
		}
		completer.Children = append(completer.Children, readline.PcItem(name))
	}
	return completer
}

// runPlain runs the line-mode REPL on stdin/stdout.
func runPlain(ctx context.Context, cfg *config.AppConfig, store vfs.Store, hist *history.Store, color bool) error {
	rl, err := readline.NewEx(&readline.Config{
		HistoryLimit:    cfg.HistoryLimit,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Printf("readline unavailable, using plain input: %v", err)
		sess := newPlainSession(cfg, store, hist, writerFor(os.Stdout, color))
		return replLoop(ctx, sess, newScannerReader(os.Stdin, os.Stdout), color)
	}
	defer func() { _ = rl.Close() }()

	if lines, err := hist.Lines(); err == nil {
		for _, line := range lines {
			_ = rl.SaveHistory(line)
		}
	}

	sess := newPlainSession(cfg, store, hist, writerFor(rl.Stdout(), color))
	return replLoop(ctx, sess, rl, color)
}

func newPlainSession(cfg *config.AppConfig, store vfs.Store, hist *history.Store, out term.Display) *session.Session {
	return session.New(session.Options{
		Store:     store,
		History:   hist,
		Out:       out,
		Home:      cfg.Home,
		User:      cfg.User,
		Host:      cfg.Host,
		Welcome:   cfg.Welcome,
		ShowIcons: cfg.ShowIcons,
		Submitted: recordHistory(hist),
	})
}

// replLoop prompts, reads and executes until EOF, exit or cancellation.
func replLoop(ctx context.Context, sess *session.Session, rl lineReader, color bool) error {
	sess.Greet()
	for !sess.Closed() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		prompt := sess.Prompt()
		if !color {
			prompt = ansi.Strip(prompt)
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		sess.Exec(ctx, line)
	}
	return nil
}
