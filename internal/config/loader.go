package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the host configuration.
// Search order: customPath -> ~/.terminity/config.yaml -> ./config.yaml -> embedded default.
// Loaded files are layered over the built-in defaults, so partial
// configs are fine.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// A custom path must exist and parse; anything else is an error.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, validate(cfg)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, validate(cfg)
			}
		}
	}

	// Try local config file
	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, validate(cfg)
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if
// home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".terminity", filename)
}

// validate rejects configurations the host cannot run with.
func validate(cfg Config) error {
	if cfg.TickRate <= 0 || cfg.TickRate > 240 {
		return fmt.Errorf("config: tick_rate %d out of range 1..240", cfg.TickRate)
	}
	if _, err := ParseKey(cfg.Keys.Quit); err != nil {
		return err
	}
	if _, err := ParseKey(cfg.Keys.Pause); err != nil {
		return err
	}
	return nil
}
