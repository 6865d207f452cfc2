package app

import "github.com/chmouel/gitbash/internal/config"

type (
	// outputMsg means the session wrote to the screen.
	outputMsg struct{}
	// configReloadedMsg carries a configuration read after a file change.
	configReloadedMsg struct {
		cfg *config.AppConfig
	}
)
