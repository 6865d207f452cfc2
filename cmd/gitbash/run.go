package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/gitbash/internal/buildinfo"
	"github.com/chmouel/gitbash/internal/log"
	"github.com/chmouel/gitbash/internal/theme"
)

// runCommand executes lines non-interactively: each argument is one line,
// or stdin is read when there are none.
func runCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "run",
		Usage:     "Execute shell lines and exit",
		ArgsUsage: "[line...]",
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return handleRun(ctx, cmd, cmd.Root().Reader, cmd.Root().Writer)
		},
	}
}

func handleRun(ctx context.Context, cmd *urfavecli.Command, in io.Reader, out io.Writer) error {
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
	sess := newPlainSession(cfg, store, hist, writerFor(out, colorEnabled(cmd)))

	if args := cmd.Args().Slice(); len(args) > 0 {
		for _, line := range args {
			if sess.Closed() {
				break
			}
			sess.Exec(ctx, line)
		}
		return nil
	}

	reader := newScannerReader(in, nil)
	for !sess.Closed() {
		line, err := reader.Readline()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		sess.Exec(ctx, line)
	}
	return nil
}

// themesCommand lists the UI themes.
func themesCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "themes",
		Usage: "List available UI themes",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, strings.Join(theme.AvailableThemes(), "\n"))
			return err
		},
	}
}

// versionCommand prints the full build metadata.
func versionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, buildinfo.Summary())
			return err
		},
	}
}
