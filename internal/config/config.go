// Package config provides YAML-based game configuration, difficulty presets
// and environment-driven server settings for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board     T2048Board     `yaml:"board"`
	Animation T2048Animation `yaml:"animation"`
}

// T2048Board defines the rules of a game.
type T2048Board struct {
	Size            int  `yaml:"size"`
	WinTarget       int  `yaml:"win_target"`
	SpawnFourChance int  `yaml:"spawn_four_chance"` // Percent, 0-100
	RejectNoopMoves bool `yaml:"reject_noop_moves"`
}

// T2048Animation defines animation timing, in simulation ticks.
type T2048Animation struct {
	SlideTicks        int `yaml:"slide_ticks"`
	PopTicks          int `yaml:"pop_ticks"`
	Jitter            int `yaml:"jitter"`              // Max extra ticks added per entity
	RoundTimeoutTicks int `yaml:"round_timeout_ticks"` // Force a stalled round after this many ticks
}

// Validate checks that the configuration can drive a game.
func (c T2048Config) Validate() error {
	var errs []error
	b, a := c.Board, c.Animation

	if b.Size < 2 || b.Size > 8 {
		errs = append(errs, fmt.Errorf("board.size %d: must be between 2 and 8", b.Size))
	}
	if b.WinTarget < 4 || b.WinTarget&(b.WinTarget-1) != 0 {
		errs = append(errs, fmt.Errorf("board.win_target %d: must be a power of two of at least 4", b.WinTarget))
	}
	if b.SpawnFourChance < 0 || b.SpawnFourChance > 100 {
		errs = append(errs, fmt.Errorf("board.spawn_four_chance %d: must be a percentage", b.SpawnFourChance))
	}
	if a.SlideTicks < 1 || a.PopTicks < 1 {
		errs = append(errs, errors.New("animation ticks must be positive"))
	}
	if a.Jitter < 0 {
		errs = append(errs, fmt.Errorf("animation.jitter %d: must not be negative", a.Jitter))
	}
	if a.RoundTimeoutTicks <= max(a.SlideTicks, a.PopTicks)+a.Jitter {
		errs = append(errs, fmt.Errorf("animation.round_timeout_ticks %d: must exceed the longest animation", a.RoundTimeoutTicks))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset parses a preset name. An empty name is DifficultyFixed,
// meaning the config is used as loaded.
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}
