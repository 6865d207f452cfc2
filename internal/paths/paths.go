// Package paths resolves shell arguments against the session's working
// directory. All paths are slash-separated and absolute, independent of the
// host operating system.
package paths

import (
	"path"
	"strings"
)

// Root is the top of the virtual store.
const Root = "/"

// Resolve turns arg into a normalized absolute path. Relative arguments are
// taken from cwd. Repeated separators collapse, "." segments disappear and
// ".." climbs one level without going above the root.
func Resolve(cwd, arg string) string {
	if arg == "" {
		return Clean(cwd)
	}
	if strings.HasPrefix(arg, "/") {
		return Clean(arg)
	}
	return Clean(cwd + "/" + arg)
}

// Join resolves name inside dir.
func Join(dir, name string) string {
	return Resolve(dir, name)
}

// Clean normalizes p into an absolute path with no trailing slash (except the
// root itself).
func Clean(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Base returns the last element of p.
func Base(p string) string {
	return path.Base(Clean(p))
}

// Abbreviate replaces a leading home directory with "~".
func Abbreviate(cwd, home string) string {
	if home == "" || home == Root {
		return cwd
	}
	home = Clean(home)
	switch {
	case cwd == home:
		return "~"
	case strings.HasPrefix(cwd, home+"/"):
		return "~" + strings.TrimPrefix(cwd, home)
	default:
		return cwd
	}
}
