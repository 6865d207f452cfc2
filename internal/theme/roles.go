package theme

// Role is a semantic style inside the shell output stream.
type Role int

// Output roles.
const (
	RolePlain Role = iota
	RoleDirectory
	RoleFile
	RolePromptUser
	RolePromptPath
)

// SGR escapes understood by the display surface.
const (
	sgrReset = "\x1b[0m"
	sgrGreen = "\x1b[32m"
	sgrBlue  = "\x1b[34m"
	sgrWhite = "\x1b[37m"
)

// Sequence returns the escape that starts role.
func (r Role) Sequence() string {
	switch r {
	case RoleDirectory, RolePromptPath:
		return sgrBlue
	case RoleFile:
		return sgrWhite
	case RolePromptUser:
		return sgrGreen
	default:
		return ""
	}
}

// Paint wraps s in the escapes for role. RolePlain returns s unchanged.
func Paint(r Role, s string) string {
	seq := r.Sequence()
	if seq == "" {
		return s
	}
	return seq + s + sgrReset
}

// Reset returns the SGR reset sequence.
func Reset() string {
	return sgrReset
}
