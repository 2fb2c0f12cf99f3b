// Package config loads the optional quizdeck config file. Everything in it
// can also be set by flags or environment variables, which win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Generate struct {
		// Provider selects which LLM provider to use.
		// Values: "anthropic", "openai", "gemini", "mock"
		Provider  string `yaml:"provider"`
		Model     string `yaml:"model"`
		Questions int    `yaml:"questions"`
	} `yaml:"generate"`
	Update struct {
		Disabled bool `yaml:"disabled"`
	} `yaml:"update"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault reads the config file at DefaultPath. A missing file is not an
// error; the zero Config is returned.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Config{}, err
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// DefaultPath resolves the config file location:
// 1. QUIZDECK_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/quizdeck/config.yml
// 3. ~/.config/quizdeck/config.yml
func DefaultPath() (string, error) {
	if p := os.Getenv("QUIZDECK_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quizdeck", "config.yml"), nil
}
