// Package main is the entry point for the gitbash shell.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v3"
	xterm "golang.org/x/term"

	"github.com/chmouel/gitbash/internal/app"
	"github.com/chmouel/gitbash/internal/buildinfo"
	"github.com/chmouel/gitbash/internal/config"
	"github.com/chmouel/gitbash/internal/log"
	"github.com/chmouel/gitbash/internal/session"
	"github.com/chmouel/gitbash/internal/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "gitbash",
		Usage:   "A simulated Git Bash shell over a virtual filesystem",
		Version: buildinfo.Version(),
		Flags:   globalFlags(),
		Commands: []*urfavecli.Command{
			runCommand(),
			themesCommand(),
			versionCommand(),
		},
		EnableShellCompletion: true,
		Action:                runShell,
	}
}

// runShell starts the interactive shell, full-screen on a terminal and in
// line mode otherwise.
func runShell(ctx context.Context, cmd *urfavecli.Command) error {
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	setupDebugLog(cfg)
	defer func() { _ = log.Close() }()

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	hist := newHistory(cfg)
	color := colorEnabled(cmd)

	if cmd.Bool("plain") || !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return runPlain(ctx, cfg, store, hist, color)
	}

	screen := term.NewBuffer(cfg.Scrollback)
	sess := session.New(session.Options{
		Store:     store,
		History:   hist,
		Out:       screen,
		Home:      cfg.Home,
		User:      cfg.User,
		Host:      cfg.Host,
		Welcome:   cfg.Welcome,
		ShowIcons: cfg.ShowIcons,
		Submitted: recordHistory(hist),
	})

	watcher := config.NewWatcher(cmd.String("config-file"), cmd.StringSlice("config"), log.Printf)
	watcher.SetFlags(flagLayer(cmd))
	if err := watcher.Start(); err != nil {
		log.Printf("config watcher disabled: %v", err)
		watcher = nil
	}

	model := app.NewModel(cfg, sess, screen, watcher)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	model.Close()
	if err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

func colorEnabled(cmd *urfavecli.Command) bool {
	return !cmd.Bool("no-color") && os.Getenv("NO_COLOR") == ""
}

func isTerminal(f any) bool {
	fd, ok := f.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return xterm.IsTerminal(int(fd.Fd())) //nolint:gosec
}

// writerFor wraps w as a display surface.
func writerFor(w io.Writer, color bool) *term.Writer {
	return term.NewWriter(w, color)
}
