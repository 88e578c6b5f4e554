// ==============================================================================================
// FILE: internal/config/config.go
// ==============================================================================================
// PACKAGE: config
// PURPOSE: Loads the optional `.icerc.yaml` file that tunes the CLI/REPL
//          front-end (SPEC_FULL.md §2.3). Never affects core language
//          semantics. Only Color is read by the CLI/REPL; MaxCallDepth
//          and Prompt are decoded but nothing else in the tree reads them.
// ==============================================================================================

package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config is the decoded shape of .icerc.yaml. The configuration used when
// no file is found is Default(), not the zero value.
type Config struct {
	Color        bool   `yaml:"color"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	Prompt       string `yaml:"prompt"`
}

// Default returns the configuration used when no .icerc.yaml is found.
func Default() Config {
	return Config{
		Color:        true,
		MaxCallDepth: 1000,
		Prompt:       "ice> ",
	}
}

// Load decodes explicitPath if it is non-empty; that file alone is used,
// and its absence is an error. Otherwise Load searches ./.icerc.yaml, then
// $HOME/.icerc.yaml, and decodes the first one found; if neither exists,
// Load returns Default() and no error.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	path, err := resolve(explicitPath)
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolve returns the first candidate path that exists, or "" if none do.
// An explicit path that doesn't exist is an error (the user asked for it
// by name); the implicit search locations are silently skipped.
func resolve(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", err
		}
		return explicitPath, nil
	}

	if _, err := os.Stat("./.icerc.yaml"); err == nil {
		return "./.icerc.yaml", nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".icerc.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", nil
}
