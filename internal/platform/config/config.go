package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults seed the conversion form when no explicit selection exists yet.
type Defaults struct {
	Potential float64 `yaml:"default_potential"`
	From      string  `yaml:"default_from"`
	To        string  `yaml:"default_to"`
}

type Config struct {
	Root         string
	DBPath       string
	PacksDir     string
	ManifestPath string
	Defaults     Defaults
}

func builtinDefaults() Defaults {
	return Defaults{
		Potential: 0.350,
		From:      "Ag/AgCl (Sat'd KCl)",
		To:        "SHE (Standard Hydrogen)",
	}
}

// New resolves paths under the config root and loads config.yaml when it
// exists. A missing file falls back to built-in defaults; a malformed one
// is an error so a typo never silently reverts the user's defaults.
func New(root string) (Config, error) {
	if root == "" {
		return Config{}, fmt.Errorf("config root is required")
	}
	cfg := Config{
		Root:         root,
		DBPath:       filepath.Join(root, "voltref.db"),
		PacksDir:     filepath.Join(root, "packs"),
		ManifestPath: filepath.Join(root, "plugins", "plugins.json"),
		Defaults:     builtinDefaults(),
	}

	b, err := os.ReadFile(filepath.Join(root, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}
	loaded := builtinDefaults()
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return Config{}, fmt.Errorf("unmarshal config.yaml: %w", err)
	}
	cfg.Defaults = loaded
	return cfg, nil
}
