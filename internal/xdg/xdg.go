// Package xdg provides XDG Base Directory paths for Credence.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "credence"

// ConfigDir returns the XDG config directory for credence.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// StateDir returns the XDG state directory for credence.
// Checks XDG_STATE_HOME first, falls back to ~/.local/state.
func StateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "state")
	}
	return filepath.Join(base, appName)
}

// DefaultConfigPath returns the path of the config file in ConfigDir when one
// exists, or "" when it does not. Used when no --config flag was given.
func DefaultConfigPath() string {
	path := filepath.Join(ConfigDir(), "credence.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
