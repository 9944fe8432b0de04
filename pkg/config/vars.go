package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "ppcollect"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/ppcollect by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/ppcollect by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DataDir returns the default directory for cached tables.
// Returns ~/.local/share/ppcollect/data by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/ppcollect/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/ppcollect/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the full path to the sources.yaml file.
// Returns ~/.config/ppcollect/sources.yaml by default.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "sources.yaml")
}

// SQLiteFilePath returns the path of the SQLite cache store inside
// the data directory.
func SQLiteFilePath(dataDir string) string {
	return filepath.Join(dataDir, "cache.sqlite")
}
