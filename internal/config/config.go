// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// BallsConfig contains all configuration for the ball-popping game.
type BallsConfig struct {
	Board   BallsBoard `yaml:"board"`
	Palette []string   `yaml:"palette"`
	Combo   BallsCombo `yaml:"combo"`
	Matcher string     `yaml:"matcher"` // "scan" or "grid"
	Settle  bool       `yaml:"settle"`  // Drop balls into gaps after removals
}

// BallsBoard defines board geometry in board units (one unit is one terminal row).
type BallsBoard struct {
	Margin   float64 `yaml:"margin"`
	Diameter float64 `yaml:"diameter"`
}

// BallsCombo defines the big-combo banner trigger. Narrow terminals hold
// smaller boards, so they get the lower threshold.
type BallsCombo struct {
	Compact      int `yaml:"compact"`
	Wide         int `yaml:"wide"`
	WideMinWidth int `yaml:"wide_min_width"` // Screen columns at which Wide applies
}

// ThresholdFor picks the combo threshold for a screen width.
func (c BallsCombo) ThresholdFor(screenW int) int {
	if c.WideMinWidth > 0 && screenW >= c.WideMinWidth {
		return c.Wide
	}
	return c.Compact
}

// Validate reports the first unusable value.
func (c BallsConfig) Validate() error {
	switch {
	case c.Board.Diameter <= 0:
		return fmt.Errorf("%w: board.diameter must be positive, got %v", ErrInvalid, c.Board.Diameter)
	case c.Board.Margin < 0:
		return fmt.Errorf("%w: board.margin must not be negative, got %v", ErrInvalid, c.Board.Margin)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: palette must name at least one color", ErrInvalid)
	case c.Combo.Compact <= 0 || c.Combo.Wide <= 0:
		return fmt.Errorf("%w: combo thresholds must be positive", ErrInvalid)
	}
	switch c.Matcher {
	case "", "scan", "grid":
	default:
		return fmt.Errorf("%w: matcher must be scan or grid, got %q", ErrInvalid, c.Matcher)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset converts a flag value to a preset.
// The empty string means "use the config as loaded".
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DifficultyFixed:
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return DifficultyFixed, fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, s)
	}
}

// PaletteForPreset returns the colors used at each difficulty. More colors
// means smaller clusters and fewer removable groups.
func PaletteForPreset(preset DifficultyPreset) []string {
	switch preset {
	case DifficultyEasy:
		return []string{"blue", "green", "purple", "red"}
	case DifficultyHard:
		return []string{"blue", "green", "purple", "red", "yellow", "orange"}
	default:
		return []string{"blue", "green", "purple", "red", "yellow"}
	}
}
