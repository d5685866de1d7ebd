package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDir returns the OS-appropriate default data directory for dayplan.
//
//   - macOS:   ~/Library/Application Support/dayplan
//   - Linux:   $XDG_DATA_HOME/dayplan (fallback ~/.local/share/dayplan)
//   - Windows: %LOCALAPPDATA%\dayplan (fallback %APPDATA%\dayplan)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "dayplan")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "dayplan")
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "dayplan")
		}
		return filepath.Join(home, "dayplan")
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, "dayplan")
		}
		return filepath.Join(home, ".local", "share", "dayplan")
	}
}
