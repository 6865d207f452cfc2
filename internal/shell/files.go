package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chmouel/gitbash/internal/models"
	"github.com/chmouel/gitbash/internal/paths"
	"github.com/chmouel/gitbash/internal/theme"
	"github.com/chmouel/gitbash/internal/vfs"
)

func runPwd(_ context.Context, env *Env, _ models.Command) error {
	env.Out.Writeln(env.Dir.Cwd())
	return nil
}

// listTarget resolves the directory ls/ll should read, printing the access
// error itself.
func listTarget(ctx context.Context, env *Env, cmd models.Command) ([]models.Entry, string, bool) {
	dir := paths.Resolve(env.Dir.Cwd(), cmd.Arg(0))
	entries, err := env.Store.ReadDir(ctx, dir)
	if err != nil {
		shown := cmd.Arg(0)
		if shown == "" {
			shown = dir
		}
		env.Out.Writeln(fmt.Sprintf(msgLsNoAccess, cmd.Name, shown))
		return nil, "", false
	}
	return entries, dir, true
}

func runLs(ctx context.Context, env *Env, cmd models.Command) error {
	entries, _, ok := listTarget(ctx, env, cmd)
	if !ok || len(entries) == 0 {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, paintEntry(env, e.Name, e.IsDir))
	}
	env.Out.Writeln(strings.Join(names, "  "))
	return nil
}

func runLl(ctx context.Context, env *Env, cmd models.Command) error {
	entries, dir, ok := listTarget(ctx, env, cmd)
	if !ok {
		return nil
	}
	for _, e := range entries {
		perm, size := permRegularFile, int64(0)
		if e.IsDir {
			perm = permDirectory
		} else if info, err := env.Store.Lstat(ctx, paths.Join(dir, e.Name)); err == nil {
			size = info.Size()
		}
		env.Out.Writeln(fmt.Sprintf(msgLongListing, perm, size, paintEntry(env, e.Name, e.IsDir)))
	}
	return nil
}

func paintEntry(env *Env, name string, isDir bool) string {
	role := theme.RoleFile
	if isDir {
		role = theme.RoleDirectory
	}
	if env.ShowIcons {
		name = iconWithSpace(iconFor(name, isDir)) + name
	}
	return theme.Paint(role, name)
}

func runCd(ctx context.Context, env *Env, cmd models.Command) error {
	arg := cmd.Arg(0)
	target := env.Home
	if arg != "" {
		target = paths.Resolve(env.Dir.Cwd(), arg)
	}
	shown := arg
	if shown == "" {
		shown = target
	}
	info, err := env.Store.Lstat(ctx, target)
	switch {
	case err != nil && vfs.IsNotFound(err):
		env.Out.Writeln(fmt.Sprintf(msgCdNoDir, shown))
		return nil
	case err != nil:
		return err
	case !info.IsDir():
		env.Out.Writeln(fmt.Sprintf(msgCdNotDir, shown))
		return nil
	}
	env.Dir.SetCwd(paths.Clean(target))
	return nil
}

func runMkdir(ctx context.Context, env *Env, cmd models.Command) error {
	name := cmd.Arg(0)
	if name == "" {
		env.Out.Writeln(msgMkdirNoArg)
		return nil
	}
	return env.Store.Mkdir(ctx, paths.Join(env.Dir.Cwd(), name))
}

func runTouch(ctx context.Context, env *Env, cmd models.Command) error {
	name := cmd.Arg(0)
	if name == "" {
		env.Out.Writeln(msgTouchNoArg)
		return nil
	}
	return env.Store.WriteFile(ctx, paths.Join(env.Dir.Cwd(), name), nil)
}

func runCat(ctx context.Context, env *Env, cmd models.Command) error {
	name := cmd.Arg(0)
	if name == "" {
		env.Out.Writeln(msgCatNoArg)
		return nil
	}
	target := paths.Join(env.Dir.Cwd(), name)
	info, err := env.Store.Lstat(ctx, target)
	switch {
	case err != nil && vfs.IsNotFound(err):
		env.Out.Writeln(fmt.Sprintf(msgCatNoFile, name))
		return nil
	case err != nil:
		return err
	case info.IsDir():
		env.Out.Writeln(fmt.Sprintf(msgCatIsDir, name))
		return nil
	}
	data, err := env.Store.ReadFile(ctx, target)
	if err != nil {
		if vfs.IsNotFound(err) {
			env.Out.Writeln(fmt.Sprintf(msgCatNoFile, name))
			return nil
		}
		return err
	}
	content := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for _, line := range strings.Split(content, "\n") {
		env.Out.Writeln(line)
	}
	return nil
}

func runRm(ctx context.Context, env *Env, cmd models.Command) error {
	name := cmd.Arg(0)
	if name == "" {
		env.Out.Writeln(msgRmNoArg)
		return nil
	}
	err := env.Store.Unlink(ctx, paths.Join(env.Dir.Cwd(), name))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, vfs.ErrIsDir):
		env.Out.Writeln(fmt.Sprintf(msgRmIsDir, name))
		return nil
	case vfs.IsNotFound(err):
		env.Out.Writeln(fmt.Sprintf(msgRmNoFile, name))
		return nil
	default:
		return err
	}
}

// runCopy implements cp, and mv when move is set.
func runCopy(move bool) handler {
	return func(ctx context.Context, env *Env, cmd models.Command) error {
		src, dst := cmd.Arg(0), cmd.Arg(1)
		if src == "" || dst == "" {
			env.Out.Writeln(fmt.Sprintf(msgCopyUsage, cmd.Name))
			return nil
		}

		cwd := env.Dir.Cwd()
		from := paths.Join(cwd, src)
		data, err := env.Store.ReadFile(ctx, from)
		if err != nil {
			if vfs.IsNotFound(err) {
				env.Out.Writeln(fmt.Sprintf(msgCopyNoFile, cmd.Name, src))
				return nil
			}
			return err
		}

		to := paths.Join(cwd, dst)
		if info, err := env.Store.Lstat(ctx, to); err == nil && info.IsDir() {
			to = paths.Join(to, paths.Base(from))
		}
		if to == from {
			return nil
		}
		if err := env.Store.WriteFile(ctx, to, data); err != nil {
			return err
		}
		if move {
			return env.Store.Unlink(ctx, from)
		}
		return nil
	}
}
