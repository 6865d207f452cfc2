package shell

// Output vocabulary of the built-ins.
const (
	msgNotFound     = "%s: comando no encontrado"
	msgDidYouMean   = "¿Quisiste decir '%s'?"
	msgError        = "Error: %s"
	msgNoHistory    = "no history"
	msgHistoryLine  = "%5d  %s"
	msgLsNoAccess   = "%s: no se puede acceder a '%s': No such file or directory"
	msgCdNoDir      = "cd: %s: No such directory"
	msgCdNotDir     = "cd: %s: Not a directory"
	msgMkdirNoArg   = "mkdir: missing operand"
	msgTouchNoArg   = "touch: missing file operand"
	msgCatNoArg     = "cat: missing file operand"
	msgCatNoFile    = "cat: %s: No such file"
	msgCatIsDir     = "cat: %s: Is a directory"
	msgRmNoArg      = "rm: missing file operand"
	msgRmNoFile     = "rm: no se puede borrar '%s': No such file or directory"
	msgRmIsDir      = "rm: no se puede borrar '%s': Is a directory"
	msgCopyNoFile   = "%s: %s: No such file"
	msgCopyUsage    = "uso: %s <origen> <destino>"
	msgLongListing  = "%s 1 user 197121 %6d ene  1 00:00 %s"
	permDirectory   = "drwxr-xr-x"
	permRegularFile = "-rw-r--r--"
)

// HelpText is printed by `help`.
const HelpText = "Comandos soportados: ls, ll, pwd, cd, mkdir, touch, cat, echo, rm, cp, mv, " +
	"history, clear, git --version|init|add, exit, help"
