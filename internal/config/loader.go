package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadT2048 loads 2048 configuration.
// Search order: customPath -> ~/.arcade/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default.
// Files are applied over the defaults, so they only need the keys they change.
func LoadT2048(customPath string) (T2048Config, error) {
	cfg, err := load("t2048.yaml", customPath, defaultT2048YAML, DefaultT2048Config())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load reads the first config file found along the search path. A custom
// path must exist and parse; the user and local files are skipped when
// missing or broken.
func load[T any](filename, customPath string, embedded []byte, fallback T) (T, error) {
	base := fallback
	if err := yaml.Unmarshal(embedded, &base); err != nil {
		base = fallback
	}

	if customPath != "" {
		cfg := base
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := base
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	return base, nil
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
// DifficultyFixed leaves the config as loaded.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Size = 6
		cfg.Board.SpawnFourChance = 0
	case DifficultyNormal:
		cfg.Board.Size = 4
		cfg.Board.WinTarget = 2048
	case DifficultyHard:
		cfg.Board.Size = 3
		cfg.Board.WinTarget = 512
		cfg.Board.SpawnFourChance = 10
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
