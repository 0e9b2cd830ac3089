// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory for global bigo configuration.
// It uses $XDG_CONFIG_HOME/bigo if set, otherwise ~/.config/bigo.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bigo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bigo")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file.
// If the file does not exist, it returns a zero-value Config and nil error.
func LoadGlobal() (*Config, error) {
	cfg, _, err := loadGlobal()
	return cfg, err
}

func loadGlobal() (*Config, string, error) {
	cfg, err := LoadFile(GlobalConfigPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", err
	}
	return cfg, GlobalConfigPath(), nil
}
