// Package config loads gitbash settings from YAML or TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/chmouel/gitbash/internal/models"
	"github.com/chmouel/gitbash/internal/theme"
)

const appName = "gitbash"

// AppConfig holds the shell configuration.
type AppConfig struct {
	Home         string
	User         string
	Host         string
	Theme        string
	HistoryFile  string
	HistoryLimit int
	DebugLog     string
	// Root is a host directory backing the virtual store. Empty means the
	// store lives in memory.
	Root       string
	Seed       []string
	ShowIcons  bool
	Welcome    string
	Scrollback int
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Home:         "/Users/Public",
		User:         "user",
		Host:         "winsim",
		Theme:        theme.GitBashName,
		HistoryLimit: 100,
		Seed:         []string{"Desktop/", "Documents/", "Downloads/"},
		Welcome:      "Welcome to Git Bash",
		Scrollback:   1000,
	}
}

// Clone returns a deep copy of c.
func (c *AppConfig) Clone() *AppConfig {
	cp := *c
	cp.Seed = append([]string(nil), c.Seed...)
	return &cp
}

// HistoryPath returns HistoryFile, or the default location under the user
// data directory.
func (c *AppConfig) HistoryPath() string {
	if c.HistoryFile != "" {
		if expanded, err := expandPath(c.HistoryFile); err == nil {
			return expanded
		}
		return c.HistoryFile
	}
	return filepath.Join(getDataDir(), appName, models.HistoryFilename)
}

func normalizeList(value any) []string {
	if value == nil {
		return []string{}
	}

	switch v := value.(type) {
	case string:
		items := []string{}
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	case []any:
		items := []string{}
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(fmt.Sprintf("%v", item))
			if text != "" {
				items = append(items, text)
			}
		}
		return items
	}
	return []string{}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func stringValue(data map[string]any, key string) (string, bool) {
	raw, ok := data[key].(string)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	applyConfig(cfg, data)
	return cfg
}

// applyConfig overlays the keys present in data onto cfg.
func applyConfig(cfg *AppConfig, data map[string]any) {
	if home, ok := stringValue(data, "home"); ok {
		cfg.Home = home
	}
	if user, ok := stringValue(data, "user"); ok {
		cfg.User = user
	}
	if host, ok := stringValue(data, "host"); ok {
		cfg.Host = host
	}
	if name, ok := stringValue(data, "theme"); ok {
		if normalized := theme.Normalize(strings.ToLower(name)); normalized != "" {
			cfg.Theme = normalized
		}
	}
	if historyFile, ok := stringValue(data, "history_file"); ok {
		cfg.HistoryFile = historyFile
	}
	if debugLog, ok := stringValue(data, "debug_log"); ok {
		cfg.DebugLog = debugLog
	}
	if root, ok := stringValue(data, "root"); ok {
		cfg.Root = root
	}
	if welcome, ok := data["welcome"].(string); ok && welcome != "" {
		cfg.Welcome = welcome
	}
	if _, ok := data["seed"]; ok {
		cfg.Seed = normalizeList(data["seed"])
	}

	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)

	if limit := coerceInt(data["history_limit"], cfg.HistoryLimit); limit > 0 {
		cfg.HistoryLimit = limit
	}
	if scrollback := coerceInt(data["scrollback"], cfg.Scrollback); scrollback > 0 {
		cfg.Scrollback = scrollback
	}
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func getDataDir() string {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return xdgDataHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}

// ConfigDir returns the directory configuration files must live in.
func ConfigDir() string {
	return filepath.Clean(filepath.Join(getConfigDir(), appName))
}

// ResolveConfigPath returns the file LoadConfig reads. An explicit path must
// sit inside ConfigDir. Without one, the first existing config.yaml,
// config.yml or config.toml wins; "" means none exists.
func ResolveConfigPath(configPath string) (string, error) {
	configBase := ConfigDir()

	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return "", err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return "", err
		}
		if !isPathWithin(configBase, absPath) {
			return "", fmt.Errorf("config path must reside inside %s", configBase)
		}
		return absPath, nil
	}

	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		candidate := filepath.Join(configBase, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// LoadConfig reads the configuration file. A missing file yields the
// defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	path, err := ResolveConfigPath(configPath)
	if err != nil {
		return DefaultConfig(), err
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return loadFile(path)
}

func loadFile(path string) (*AppConfig, error) {
	// #nosec G304 -- path is constrained to the config directory
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("read config: %w", err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return parseConfig(raw), nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

func isPathWithin(base, target string) bool {
	base = filepath.Clean(base)
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}
