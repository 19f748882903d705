// Package config provides YAML-based game configuration loading for
// Pac-Man.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman/core"
)

// PacmanConfig contains all configuration for the Pac-Man game.
type PacmanConfig struct {
	Timing  PacmanTiming  `yaml:"timing"`
	Scoring PacmanScoring `yaml:"scoring"`
	Levels  PacmanLevels  `yaml:"levels"`
}

// PacmanTiming defines the clock and timer lengths, in milliseconds.
type PacmanTiming struct {
	TickMs       int `yaml:"tick_ms"`
	PowerMs      int `yaml:"power_ms"`
	GhostDeadMs  int `yaml:"ghost_dead_ms"`
	GhostBlinkMs int `yaml:"ghost_blink_ms"` // Dead ghosts blink once this close to revival
}

// PacmanScoring defines the points awarded per event.
type PacmanScoring struct {
	SmallItem int `yaml:"small_item"`
	BigItem   int `yaml:"big_item"`
	Ghost     int `yaml:"ghost"`
}

// PacmanLevels points at extra level files on disk.
type PacmanLevels struct {
	Dir     string `yaml:"dir"`
	Default string `yaml:"default"`
}

// TickPeriod returns the duration of one game tick.
func (c PacmanConfig) TickPeriod() time.Duration {
	return ms(c.Timing.TickMs)
}

// BlinkWindow returns how long before revival a dead ghost starts blinking.
func (c PacmanConfig) BlinkWindow() time.Duration {
	return ms(c.Timing.GhostBlinkMs)
}

// Rules converts the configuration to the engine's rule set.
func (c PacmanConfig) Rules() core.Rules {
	return core.Rules{
		TickPeriod:      c.TickPeriod(),
		SmallItemPoints: c.Scoring.SmallItem,
		BigItemPoints:   c.Scoring.BigItem,
		GhostPoints:     c.Scoring.Ghost,
		PowerDuration:   ms(c.Timing.PowerMs),
		DeadDuration:    ms(c.Timing.GhostDeadMs),
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c PacmanConfig) Validate() error {
	var errs []error
	if c.Timing.TickMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_ms must be positive, got %d", c.Timing.TickMs))
	}
	if c.Timing.PowerMs < 0 {
		errs = append(errs, fmt.Errorf("timing.power_ms must not be negative, got %d", c.Timing.PowerMs))
	}
	if c.Timing.GhostDeadMs < 0 {
		errs = append(errs, fmt.Errorf("timing.ghost_dead_ms must not be negative, got %d", c.Timing.GhostDeadMs))
	}
	if c.Timing.GhostBlinkMs < 0 {
		errs = append(errs, fmt.Errorf("timing.ghost_blink_ms must not be negative, got %d", c.Timing.GhostBlinkMs))
	}
	if c.Scoring.SmallItem < 0 || c.Scoring.BigItem < 0 || c.Scoring.Ghost < 0 {
		errs = append(errs, errors.New("scoring values must not be negative"))
	}
	return errors.Join(errs...)
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
