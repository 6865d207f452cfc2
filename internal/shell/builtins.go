package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/chmouel/gitbash/internal/models"
)

func runEcho(_ context.Context, env *Env, cmd models.Command) error {
	env.Out.Writeln(strings.Join(cmd.Args, " "))
	return nil
}

func runClear(_ context.Context, env *Env, _ models.Command) error {
	env.Out.Clear()
	return nil
}

func runHelp(_ context.Context, env *Env, _ models.Command) error {
	env.Out.Writeln(HelpText)
	return nil
}

// runHistory prints stored lines. A broken store reads as empty.
func runHistory(_ context.Context, env *Env, _ models.Command) error {
	var lines []string
	if env.History != nil {
		var err error
		if lines, err = env.History.Lines(); err != nil {
			env.Log.Printf("history unavailable: %v", err)
			lines = nil
		}
	}
	if len(lines) == 0 {
		env.Out.Writeln(msgNoHistory)
		return nil
	}
	for i, line := range lines {
		env.Out.Writeln(fmt.Sprintf(msgHistoryLine, i+1, line))
	}
	return nil
}

func runGit(ctx context.Context, env *Env, cmd models.Command) error {
	lines, err := env.Repos.Run(ctx, env.Dir.Cwd(), env.Store, cmd.Args)
	if err != nil {
		return err
	}
	for _, line := range lines {
		env.Out.Writeln(line)
	}
	return nil
}

func runExit(_ context.Context, env *Env, _ models.Command) error {
	if env.Exit != nil {
		env.Exit()
	}
	return nil
}
