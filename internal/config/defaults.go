package config

import (
	_ "embed"
)

//go:embed defaults/balls.yaml
var defaultBallsYAML []byte

// DefaultBallsConfig returns the built-in configuration.
func DefaultBallsConfig() BallsConfig {
	return BallsConfig{
		Board: BallsBoard{
			Margin:   2,
			Diameter: 1,
		},
		Palette: PaletteForPreset(DifficultyNormal),
		Combo: BallsCombo{
			Compact:      6,
			Wide:         12,
			WideMinWidth: 120,
		},
		Matcher: "scan",
		Settle:  true,
	}
}

// DefaultBallsYAML returns the embedded default config file.
func DefaultBallsYAML() []byte {
	return defaultBallsYAML
}
