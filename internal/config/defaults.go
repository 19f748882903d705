package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultPacmanConfig returns the default Pac-Man configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Timing: PacmanTiming{
			TickMs:       200,
			PowerMs:      8000,
			GhostDeadMs:  12000,
			GhostBlinkMs: 3000,
		},
		Scoring: PacmanScoring{
			SmallItem: 10,
			BigItem:   50,
			Ghost:     100,
		},
		Levels: PacmanLevels{
			Default: "classic",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPacmanYAML
}
