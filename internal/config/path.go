// Package config loads and validates application settings.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath returns the preferences database location under the
// user's data directory, honoring XDG_DATA_HOME.
func DefaultDatabasePath() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "octobadge", "octobadge.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "octobadge.db"
	}
	return filepath.Join(home, ".local", "share", "octobadge", "octobadge.db")
}

// ExpandPath resolves a leading ~ to the home directory and then expands
// $VAR references. Paths the home directory cannot resolve are left as is.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + strings.TrimPrefix(path, "~")
		}
	}
	return os.ExpandEnv(path)
}
