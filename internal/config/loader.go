package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPacman loads Pac-Man configuration.
// Search order: customPath -> ~/.pacman/configs/pacman.yaml -> ./configs/pacman.yaml -> embedded default
// Files are overlaid on the defaults, so a partial file only changes the keys it sets.
func LoadPacman(customPath string) (PacmanConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PacmanConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return PacmanConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pacman.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "pacman.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultPacmanYAML)
	if err != nil {
		return DefaultPacmanConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse overlays data on the hardcoded defaults and validates the result.
func parse(data []byte) (PacmanConfig, error) {
	cfg := DefaultPacmanConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PacmanConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PacmanConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pacman", "configs", filename)
}
