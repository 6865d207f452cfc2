package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/gitbash/internal/paths"
)

const cursorGlyph = "█"

// View renders the header, the scrollback and the status bar.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

// refreshContent copies the screen buffer into the viewport, keeping the
// view pinned to the bottom when it already was.
func (m *Model) refreshContent() {
	atBottom := m.viewport.AtBottom() || m.rev == 0
	m.rev = m.screen.Rev()

	lines := m.screen.Lines()
	if n := len(lines); n > 0 {
		lines[n-1] += lipgloss.NewStyle().Foreground(m.theme.Accent).Render(cursorGlyph)
	}
	width := max(1, m.viewport.Width)
	for i, line := range lines {
		lines[i] = wrap.String(line, width)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) renderHeader() string {
	style := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Width(max(1, m.width)).
		Padding(0, 1)
	title := fmt.Sprintf("MINGW64 %s@%s", m.config.User, m.config.Host)
	return style.Render(ansi.Truncate(title, max(1, m.width-2), "…"))
}

func (m *Model) renderFooter() string {
	status := m.session.Status()
	cwd := paths.Abbreviate(status.Cwd, m.config.Home)

	left := lipgloss.NewStyle().Foreground(m.theme.Foreground).Render(cwd)
	repo := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("no repo")
	if status.IsRepo {
		repo = lipgloss.NewStyle().Foreground(m.theme.SuccessFg).
			Render(fmt.Sprintf("git: %d staged", status.Staged))
	}
	hint := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("pgup/pgdn scroll  ctrl+c quit")

	right := repo + "  " + hint
	gap := max(1, m.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	line := left + strings.Repeat(" ", gap) + right

	return lipgloss.NewStyle().
		Background(m.theme.Background).
		Width(max(1, m.width)).
		Padding(0, 1).
		Render(ansi.Truncate(line, max(1, m.width-2), "…"))
}
