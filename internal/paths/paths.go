package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// BaseDir returns ~/.flash, or $FLASH_HOME when set.
func BaseDir() string {
	if dir := os.Getenv("FLASH_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".flash")
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// HistoryDBPath returns the flash history database path.
func HistoryDBPath() string {
	return filepath.Join(BaseDir(), "history.db")
}

// LogDir returns the log directory.
func LogDir() string {
	return filepath.Join(BaseDir(), "logs")
}

// LogPath returns the log file path.
func LogPath() string {
	return filepath.Join(LogDir(), "flash.log")
}

// Expand replaces a leading "~/" with the user's home directory.
func Expand(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// EnsureDir creates the directory tree for a file path with private permissions.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0700)
}
