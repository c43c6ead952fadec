// Package paths resolves where foodblog keeps its configuration file and
// its interactive prompt history.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "foodblog"

// Environment variables that override the resolved directories.
const (
	EnvConfigDir = "FOODBLOG_CONFIG_DIR"
	EnvStateDir  = "FOODBLOG_STATE_DIR"
)

// ConfigFileName is the file read from the config directory.
const ConfigFileName = "config.yaml"

// historyFileName holds the interactive prompt history in the state dir.
const historyFileName = "history"

// platform holds lookups that tests override.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $<xdgVar>/foodblog on Linux, falling back to
// ~/<fallback...>/foodblog. Other platforms use os.UserConfigDir.
func xdgDir(xdgVar string, fallback ...string) (string, error) {
	if platform.goos != "linux" {
		dir, err := platform.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if v := os.Getenv(xdgVar); v != "" {
		return filepath.Join(v, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, AppName)...), nil
}

// DefaultConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/foodblog (fallback ~/.config/foodblog)
// macOS:   ~/Library/Application Support/foodblog
// Windows: %APPDATA%/foodblog
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultStateDir returns the platform state directory.
//
// Linux: $XDG_STATE_HOME/foodblog (fallback ~/.local/state/foodblog).
// Elsewhere it equals DefaultConfigDir.
func DefaultStateDir() (string, error) {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

// resolve returns flag, then $env, then def(), made absolute.
func resolve(flag, env string, def func() (string, error)) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if v := os.Getenv(env); v != "" {
		return filepath.Abs(v)
	}
	return def()
}

// ResolveConfigDir applies flag > FOODBLOG_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return resolve(flag, EnvConfigDir, DefaultConfigDir)
}

// ResolveStateDir applies configValue > FOODBLOG_STATE_DIR > DefaultStateDir.
func ResolveStateDir(configValue string) (string, error) {
	return resolve(configValue, EnvStateDir, DefaultStateDir)
}

// ConfigFile returns the config file path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// HistoryFile returns the prompt history path inside stateDir, creating
// stateDir if needed.
func HistoryFile(stateDir string) (string, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(stateDir, historyFileName), nil
}
