package shell

// Kind identifies a built-in command.
type Kind int

// Built-in commands. kindCount must stay last.
const (
	KindLs Kind = iota
	KindLl
	KindPwd
	KindCd
	KindMkdir
	KindTouch
	KindCat
	KindEcho
	KindRm
	KindCp
	KindMv
	KindHistory
	KindClear
	KindHelp
	KindGit
	KindExit
	kindCount
)

var kindNames = [kindCount]string{
	KindLs:      "ls",
	KindLl:      "ll",
	KindPwd:     "pwd",
	KindCd:      "cd",
	KindMkdir:   "mkdir",
	KindTouch:   "touch",
	KindCat:     "cat",
	KindEcho:    "echo",
	KindRm:      "rm",
	KindCp:      "cp",
	KindMv:      "mv",
	KindHistory: "history",
	KindClear:   "clear",
	KindHelp:    "help",
	KindGit:     "git",
	KindExit:    "exit",
}

// String returns the command name typed by the user.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every built-in in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Names returns the built-in command names in declaration order.
func Names() []string {
	return append([]string(nil), kindNames[:]...)
}

// LookupKind maps a command name to its Kind. Names are case-sensitive.
func LookupKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}
