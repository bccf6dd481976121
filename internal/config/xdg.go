// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "sensearff"

// xdgDir resolves an XDG base directory from env, falling back to
// rel under the home directory, or the working directory without one.
func xdgDir(env string, rel ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, rel...)...)
}

// DefaultDBPath returns the run history database under $XDG_DATA_HOME.
func DefaultDBPath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), appName, appName+".db")
}

// DefaultConfigPath returns the TOML config path under $XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appName, "config.toml")
}
