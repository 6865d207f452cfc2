package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/chmouel/gitbash/internal/models"
)

// Messages printed by the git sub-protocol.
const (
	MsgReinitialized  = "Reinitialized existing Git repository."
	MsgAllStaged      = "Todos los archivos agregados al área de staging."
	MsgNotRepository  = "fatal: not a git repository (or any of the parent directories): .git"
	MsgNothingAdded   = "Nothing specified, nothing added."
	MsgAddHint        = "hint: Maybe you wanted to say 'git add .'?"
	MsgSupportedHint  = "Comando git. Soportado: --version, init, add."
	msgInitialized    = "Initialized empty Git repository in %s/.git/"
	msgStagedOne      = "'%s' agregado al área de staging."
	msgPathspecNoFile = "fatal: pathspec '%s' did not match any files"
)

// Lister lists the children of a directory.
type Lister interface {
	ReadDir(ctx context.Context, p string) ([]models.Entry, error)
}

// Run executes `git <args>` in dir and returns the lines to print. A
// non-nil error is an unexpected store failure.
func (r *Registry) Run(ctx context.Context, dir string, lister Lister, args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{MsgSupportedHint}, nil
	}
	switch args[0] {
	case "--version":
		return []string{models.GitVersion}, nil
	case "init":
		if r.Init(dir) {
			return []string{MsgReinitialized}, nil
		}
		return []string{fmt.Sprintf(msgInitialized, trimRoot(dir))}, nil
	case "add":
		return r.runAdd(ctx, dir, lister, args[1:])
	default:
		return []string{MsgSupportedHint}, nil
	}
}

func (r *Registry) runAdd(ctx context.Context, dir string, lister Lister, args []string) ([]string, error) {
	if !r.IsRepository(dir) {
		return []string{MsgNotRepository}, nil
	}
	if len(args) == 0 {
		return []string{MsgNothingAdded, MsgAddHint}, nil
	}

	entries, err := lister.ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	if args[0] == "." {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		if _, err := r.Add(dir, names...); err != nil {
			return nil, err
		}
		return []string{MsgAllStaged}, nil
	}

	var out []string
	for _, name := range args {
		if !hasChild(entries, name) {
			out = append(out, fmt.Sprintf(msgPathspecNoFile, name))
			continue
		}
		if _, err := r.Add(dir, name); err != nil {
			if errors.Is(err, ErrNotRepository) {
				return []string{MsgNotRepository}, nil
			}
			return nil, err
		}
		out = append(out, fmt.Sprintf(msgStagedOne, name))
	}
	return out, nil
}

func hasChild(entries []models.Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// trimRoot avoids a doubled separator when the repository is the root.
func trimRoot(dir string) string {
	if dir == "/" {
		return ""
	}
	return dir
}
