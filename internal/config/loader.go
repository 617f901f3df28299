package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBalls loads the ball game configuration.
// Search order: customPath -> ~/.ballpop/configs/balls.yaml -> ./configs/balls.yaml -> embedded default
func LoadBalls(customPath string) (BallsConfig, error) {
	// A custom path must exist and parse; the fallbacks are best-effort.
	if customPath != "" {
		cfg, err := readBalls(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{userConfigPath("balls.yaml"), filepath.Join("configs", "balls.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := readBalls(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg, err := parseBalls(defaultBallsYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultBallsConfig(), nil
	}
	return cfg, nil
}

func readBalls(path string) (BallsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BallsConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parseBalls(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parseBalls decodes YAML over the hardcoded defaults, so a file only needs
// the keys it changes.
func parseBalls(data []byte) (BallsConfig, error) {
	cfg := DefaultBallsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ballpop", "configs", filename)
}

// ApplyBallsPreset adjusts the palette for a difficulty preset.
// DifficultyFixed keeps the palette from the loaded file.
func ApplyBallsPreset(cfg *BallsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		return
	}
	cfg.Palette = PaletteForPreset(preset)
}
