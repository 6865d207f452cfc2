package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/gitbash/internal/models"
)

// keysFor translates a terminal key into session key events. Keys the shell
// does not understand map to nothing.
func keysFor(msg tea.KeyMsg) []models.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]models.Key, 0, len(msg.Runes))
		var prev rune
		for _, r := range msg.Runes {
			// Pasted text may carry line breaks. CRLF is one break.
			switch {
			case r == '\n' && prev == '\r':
			case r == '\n' || r == '\r':
				keys = append(keys, models.EnterKey())
			default:
				keys = append(keys, models.RuneKey(r))
			}
			prev = r
		}
		return keys
	case tea.KeySpace:
		return []models.Key{models.RuneKey(' ')}
	case tea.KeyEnter:
		return []models.Key{models.EnterKey()}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []models.Key{models.BackspaceKey()}
	default:
		return nil
	}
}
