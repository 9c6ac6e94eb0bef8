// Package fs provides file system access: default directories, workspace
// source capture, and on-disk caching.
package fs

import (
	"os"
	"path/filepath"
)

const appName = "lintview"

// DefaultCacheDir returns the default cache directory for lintview.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/lintview,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// DefaultDataDir returns the directory for persistent state such as snapshot
// history. Uses XDG_DATA_HOME if set, otherwise ~/.local/share/lintview.
func DefaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// DefaultConfigPath returns the default configuration file path. Uses
// XDG_CONFIG_HOME if set, otherwise ~/.config/lintview/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "config.yaml")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, fallback, appName)
}
