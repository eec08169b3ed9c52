package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EmbeddedSource is reported by Load when no settings file was found.
const EmbeddedSource = "embedded"

// Load loads the runtime settings and reports where they came from.
// Search order: customPath -> ~/.flappyplane/settings.yaml -> ./configs/settings.yaml -> embedded default
// Keys missing from a file keep their default values.
func Load(customPath string) (Settings, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Settings{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Settings{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("settings.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", "settings.yaml")
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, local, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultSettingsYAML)
	if err != nil {
		return DefaultSettings(), EmbeddedSource, nil // Fallback to hardcoded if embed fails
	}
	return cfg, EmbeddedSource, nil
}

// parse decodes data over the built-in defaults.
func parse(data []byte) (Settings, error) {
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappyplane", filename)
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the settings for values the game cannot run with.
func (s Settings) Validate() error {
	if s.Game.TickRate <= 0 || s.Game.TickRate > 240 {
		return fmt.Errorf("config: tick_rate must be in 1..240, got %d", s.Game.TickRate)
	}
	if s.Input.HoldWindow < 0 {
		return fmt.Errorf("config: hold_window must not be negative, got %s", s.Input.HoldWindow)
	}
	if !logLevels[s.Log.Level] {
		return fmt.Errorf("config: unknown log level %q", s.Log.Level)
	}
	return nil
}

// Marshal encodes the settings as YAML.
func (s Settings) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("config: marshal settings: %w", err)
	}
	return data, nil
}
