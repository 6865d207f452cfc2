package main

import (
	"fmt"
	"os"
	"strings"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/gitbash/internal/config"
	"github.com/chmouel/gitbash/internal/history"
	"github.com/chmouel/gitbash/internal/log"
	"github.com/chmouel/gitbash/internal/theme"
	"github.com/chmouel/gitbash/internal/vfs"
)

// loadCLIConfig reads the config file and layers flags and -C overrides on
// top, in that order.
func loadCLIConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if err := flagLayer(cmd)(cfg); err != nil {
		return nil, err
	}

	cfg, err = config.ApplyCLIOverrides(cfg, cmd.StringSlice("config"))
	if err != nil {
		return nil, fmt.Errorf("error applying config overrides: %w", err)
	}
	return cfg, nil
}

// flagLayer returns the function that puts explicit flags on top of a
// loaded config. The config watcher reuses it on reload.
func flagLayer(cmd *urfavecli.Command) func(*config.AppConfig) error {
	themeName := cmd.String("theme")
	home := strings.TrimSpace(cmd.String("home"))
	root := strings.TrimSpace(cmd.String("root"))
	debugLog := cmd.String("debug-log")
	return func(cfg *config.AppConfig) error {
		if err := applyThemeConfig(cfg, themeName); err != nil {
			return err
		}
		if home != "" {
			cfg.Home = home
		}
		if root != "" {
			cfg.Root = root
		}
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
		return nil
	}
}

// applyThemeConfig applies the --theme flag.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}
	normalized := theme.Normalize(strings.ToLower(themeName))
	if normalized == "" {
		return fmt.Errorf("unknown theme %q (available: %s)", themeName, strings.Join(theme.AvailableThemes(), ", "))
	}
	cfg.Theme = normalized
	return nil
}

// setupDebugLog points the debug log at cfg.DebugLog, or turns it off.
func setupDebugLog(cfg *config.AppConfig) {
	path := cfg.DebugLog
	if path == "" {
		_ = log.SetFile("")
		return
	}
	if expanded, err := expandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

// newStore builds the virtual filesystem and seeds the home directory.
func newStore(cfg *config.AppConfig) (*vfs.AferoStore, error) {
	var (
		store *vfs.AferoStore
		err   error
	)
	if cfg.Root != "" {
		root, expandErr := expandPath(cfg.Root)
		if expandErr != nil {
			return nil, expandErr
		}
		if store, err = vfs.NewOSStore(root); err != nil {
			return nil, fmt.Errorf("open store root: %w", err)
		}
		log.Printf("store rooted at %s", root)
	} else {
		store = vfs.NewMemStore()
	}
	if err := store.Seed(cfg.Home, cfg.Seed); err != nil {
		return nil, fmt.Errorf("seed home: %w", err)
	}
	return store, nil
}

func newHistory(cfg *config.AppConfig) *history.Store {
	kv := history.NewFileKV(cfg.HistoryPath())
	log.Printf("history file %s", kv.Path())
	return history.NewStore(kv, cfg.HistoryLimit)
}

// recordHistory returns a Submitted callback appending to h.
func recordHistory(h *history.Store) func(string) {
	return func(line string) {
		if err := h.Append(line); err != nil {
			log.Printf("history append failed: %v", err)
		}
	}
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = home + path[1:]
	}
	return os.ExpandEnv(path), nil
}
