// Package theme holds the colors of the terminal window chrome and the
// semantic styles used inside the shell's output stream.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the window around the shell.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // text drawn on Accent
	Border     lipgloss.Color
	MutedFg    lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
}

// Theme names.
const (
	GitBashName        = "gitbash"
	DraculaName        = "dracula"
	NordName           = "nord"
	SolarizedLightName = "solarized-light"
)

// GitBash mirrors the classic Git for Windows terminal.
func GitBash() *Theme {
	return &Theme{
		Background: lipgloss.Color("#1D1F21"),
		Foreground: lipgloss.Color("#C5C8C6"),
		Accent:     lipgloss.Color("#B5BD68"),
		AccentFg:   lipgloss.Color("#1D1F21"),
		Border:     lipgloss.Color("#373B41"),
		MutedFg:    lipgloss.Color("#969896"),
		SuccessFg:  lipgloss.Color("#B5BD68"),
		WarnFg:     lipgloss.Color("#F0C674"),
		ErrorFg:    lipgloss.Color("#CC6666"),
	}
}

// Dracula returns the Dracula palette.
func Dracula() *Theme {
	return &Theme{
		Background: lipgloss.Color("#282A36"),
		Foreground: lipgloss.Color("#F8F8F2"),
		Accent:     lipgloss.Color("#BD93F9"),
		AccentFg:   lipgloss.Color("#282A36"),
		Border:     lipgloss.Color("#44475A"),
		MutedFg:    lipgloss.Color("#6272A4"),
		SuccessFg:  lipgloss.Color("#50FA7B"),
		WarnFg:     lipgloss.Color("#FFB86C"),
		ErrorFg:    lipgloss.Color("#FF5555"),
	}
}

// Nord returns the Nord palette.
func Nord() *Theme {
	return &Theme{
		Background: lipgloss.Color("#2E3440"),
		Foreground: lipgloss.Color("#E5E9F0"),
		Accent:     lipgloss.Color("#88C0D0"),
		AccentFg:   lipgloss.Color("#2E3440"),
		Border:     lipgloss.Color("#434C5E"),
		MutedFg:    lipgloss.Color("#81A1C1"),
		SuccessFg:  lipgloss.Color("#A3BE8C"),
		WarnFg:     lipgloss.Color("#EBCB8B"),
		ErrorFg:    lipgloss.Color("#BF616A"),
	}
}

// SolarizedLight returns a light palette.
func SolarizedLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FDF6E3"),
		Foreground: lipgloss.Color("#586E75"),
		Accent:     lipgloss.Color("#268BD2"),
		AccentFg:   lipgloss.Color("#FDF6E3"),
		Border:     lipgloss.Color("#EEE8D5"),
		MutedFg:    lipgloss.Color("#93A1A1"),
		SuccessFg:  lipgloss.Color("#859900"),
		WarnFg:     lipgloss.Color("#B58900"),
		ErrorFg:    lipgloss.Color("#DC322F"),
	}
}

// GetTheme returns a theme by name, or GitBash if not found.
func GetTheme(name string) *Theme {
	switch name {
	case DraculaName:
		return Dracula()
	case NordName:
		return Nord()
	case SolarizedLightName:
		return SolarizedLight()
	default:
		return GitBash()
	}
}

// AvailableThemes returns the supported theme names.
func AvailableThemes() []string {
	return []string{GitBashName, DraculaName, NordName, SolarizedLightName}
}

// Normalize returns the canonical theme name, or "" when unsupported.
func Normalize(name string) string {
	for _, n := range AvailableThemes() {
		if n == name {
			return n
		}
	}
	return ""
}
