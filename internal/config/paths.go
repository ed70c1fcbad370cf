package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// LocalDir is the per-project directory checked before any global location.
const LocalDir = "." + AppName

// GetGlobalConfigDir returns the path to the global directory (~/.daytrack).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LocalDir), nil
}

// GetDataDir returns the directory holding tasks, logs and crash reports.
// Resolution order (first match wins):
// 1. Explicit config via "data.dir" (Viper/env/flag)
// 2. Local project directory: .daytrack (if exists)
// 3. XDG_DATA_HOME/daytrack (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.daytrack
func GetDataDir() string {
	if dir := viper.GetString("data.dir"); dir != "" {
		return dir
	}

	if info, err := os.Stat(LocalDir); err == nil && info.IsDir() {
		return LocalDir
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppName)
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return LocalDir
	}
	return dir
}

// ResolvePath joins a relative name onto the data directory. Absolute paths are kept.
func ResolvePath(dataDir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dataDir, name)
}
