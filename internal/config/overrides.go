package config

import (
	"fmt"
	"strings"
)

// OverridePrefix starts every command-line configuration key.
const OverridePrefix = "gb."

// parseCLIConfigOverrides parses gb.key=value pairs into a map for
// applyConfig. A repeated key becomes a list.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)
	keyCount := make(map[string]int)

	for _, override := range overrides {
		fullKey, value, ok := strings.Cut(override, "=")
		if !ok {
			return nil, fmt.Errorf("invalid config override: %q, expected format: gb.key=value (note: use = not space)", override)
		}
		if !strings.HasPrefix(fullKey, OverridePrefix) {
			return nil, fmt.Errorf("config override key must start with %q: %q", OverridePrefix, fullKey)
		}

		key := strings.TrimPrefix(fullKey, OverridePrefix)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}

		keyCount[key]++
		switch keyCount[key] {
		case 1:
			result[key] = value
		case 2:
			result[key] = []any{result[key].(string), value}
		default:
			result[key] = append(result[key].([]any), value)
		}
	}

	return result, nil
}

// ApplyCLIOverrides returns a copy of cfg with the overrides applied on top.
func ApplyCLIOverrides(cfg *AppConfig, overrides []string) (*AppConfig, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if len(overrides) == 0 {
		return cfg, nil
	}
	data, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return cfg, err
	}
	out := cfg.Clone()
	applyConfig(out, data)
	return out, nil
}
