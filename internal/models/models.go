// Package models defines the data objects shared across gitbash packages.
package models

// Entry is a child of a directory in the virtual store.
type Entry struct {
	Name  string
	IsDir bool
}

// Command is a parsed input line.
type Command struct {
	Name string
	Args []string
}

// Empty reports whether the command came from a blank line.
func (c Command) Empty() bool {
	return c.Name == ""
}

// Arg returns the i-th positional argument or "" when missing.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// RepoState is the simulated repository attached to one directory.
type RepoState struct {
	Initialized bool
	Staged      []string // insertion order, no duplicates
}

// IsStaged reports whether name is already in the staged set.
func (r *RepoState) IsStaged(name string) bool {
	for _, s := range r.Staged {
		if s == name {
			return true
		}
	}
	return false
}

// KeyType identifies a raw key event coming from the display surface.
type KeyType int

// Key types understood by the session.
const (
	KeyRune KeyType = iota
	KeyEnter
	KeyBackspace
)

// String returns a human-readable name for the key type.
func (k KeyType) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	default:
		return "unknown"
	}
}

// Key is a single key event.
type Key struct {
	Type KeyType
	Rune rune // only meaningful for KeyRune
}

// RuneKey builds a printable key event.
func RuneKey(r rune) Key { return Key{Type: KeyRune, Rune: r} }

// EnterKey builds an Enter key event.
func EnterKey() Key { return Key{Type: KeyEnter} }

// BackspaceKey builds a Backspace key event.
func BackspaceKey() Key { return Key{Type: KeyBackspace} }

// KeysForString expands s into rune key events.
func KeysForString(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, RuneKey(r))
	}
	return keys
}

const (
	// HistoryKey is the key-value entry holding the newline-joined history.
	HistoryKey = "gitbash.history"
	// HistoryFilename is the default JSON file backing the history store.
	HistoryFilename = "history.json"
	// GitVersion is printed by `git --version`.
	GitVersion = "git version 2.42.0"
)
