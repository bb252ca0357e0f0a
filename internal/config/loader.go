package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search path.
const FileName = "tetris.yaml"

// Load loads the tetris configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml ->
// ./configs/tetris.yaml -> embedded default -> DefaultTetrisConfig.
// Files found on the search path are layered over the defaults, so they
// only need the keys they change. The result is validated.
func Load(customPath string) (TetrisConfig, error) {
	cfg, err := embeddedDefault()
	if err != nil {
		cfg = DefaultTetrisConfig()
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, validate(customPath, cfg)
	}

	for _, path := range searchPath() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := cfg
		if err := yaml.Unmarshal(data, &layered); err != nil {
			continue
		}
		return layered, validate(path, layered)
	}

	return cfg, validate("embedded default", cfg)
}

func embeddedDefault() (TetrisConfig, error) {
	var cfg TetrisConfig
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(source string, cfg TetrisConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: invalid %s: %w", source, err)
	}
	return nil
}

// searchPath lists the optional config locations in priority order.
func searchPath() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}
