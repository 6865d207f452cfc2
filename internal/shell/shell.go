// Package shell interprets command lines against the virtual store and the
// simulated repositories, writing results to a term.Display.
package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/chmouel/gitbash/internal/log"
	"github.com/chmouel/gitbash/internal/models"
	"github.com/chmouel/gitbash/internal/repo"
	"github.com/chmouel/gitbash/internal/term"
	"github.com/chmouel/gitbash/internal/vfs"
)

// suggestDistance is the largest edit distance offered as a suggestion.
const suggestDistance = 2

// HistoryReader returns previously submitted lines, oldest first.
type HistoryReader interface {
	Lines() ([]string, error)
}

// WorkDir owns the current directory of a session.
type WorkDir interface {
	Cwd() string
	SetCwd(dir string)
}

// Env is everything a command can touch.
type Env struct {
	Store     vfs.Store
	Repos     *repo.Registry
	History   HistoryReader
	Out       term.Display
	Dir       WorkDir
	Home      string
	ShowIcons bool
	// Exit is called by `exit`. It may be nil.
	Exit func()
	Log  log.Logger
}

type handler func(ctx context.Context, env *Env, cmd models.Command) error

// Dispatcher maps command names to handlers.
type Dispatcher struct {
	handlers [kindCount]handler
}

// NewDispatcher returns a dispatcher wired with every built-in.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	d.handlers = [kindCount]handler{
		KindLs:      runLs,
		KindLl:      runLl,
		KindPwd:     runPwd,
		KindCd:      runCd,
		KindMkdir:   runMkdir,
		KindTouch:   runTouch,
		KindCat:     runCat,
		KindEcho:    runEcho,
		KindRm:      runRm,
		KindCp:      runCopy(false),
		KindMv:      runCopy(true),
		KindHistory: runHistory,
		KindClear:   runClear,
		KindHelp:    runHelp,
		KindGit:     runGit,
		KindExit:    runExit,
	}
	return d
}

// Parse splits line on runs of whitespace. The first token is the name.
func Parse(line string) models.Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return models.Command{}
	}
	return models.Command{Name: fields[0], Args: fields[1:]}
}

// Dispatch runs one line. Failures are printed to env.Out and never
// returned.
func (d *Dispatcher) Dispatch(ctx context.Context, env *Env, line string) {
	cmd := Parse(line)
	if cmd.Empty() {
		return
	}

	kind, ok := LookupKind(cmd.Name)
	if !ok {
		env.Out.Writeln(fmt.Sprintf(msgNotFound, cmd.Name))
		if s := Suggest(cmd.Name); s != "" {
			env.Out.Writeln(fmt.Sprintf(msgDidYouMean, s))
		}
		env.Log.Printf("unknown command %q", cmd.Name)
		return
	}

	if err := d.run(ctx, env, kind, cmd); err != nil {
		env.Log.Printf("%s failed: %v", kind, err)
		env.Out.Writeln(fmt.Sprintf(msgError, err.Error()))
	}
}

func (d *Dispatcher) run(ctx context.Context, env *Env, kind Kind, cmd models.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return d.handlers[kind](ctx, env, cmd)
}

// Suggest returns the built-in closest to name, or "" when none is close.
// A suggestion never replaces every character of name.
func Suggest(name string) string {
	limit := min(suggestDistance, len([]rune(name))-1)
	best, bestDist := "", limit+1
	for _, candidate := range kindNames {
		if dist := levenshtein.ComputeDistance(name, candidate); dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}
