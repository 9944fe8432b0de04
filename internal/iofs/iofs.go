// Package iofs prepares the directories and configuration files ppcollect
// keeps under the home directory.
package iofs

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/ppcollect/pkg/config"
	"github.com/gnames/ppcollect/pkg/templates"
)

// EnsureDirs creates config, cache, log and data directories. A custom
// data directory from config.yaml is created as well.
func EnsureDirs(cfg *config.Config) error {
	home := cfg.HomeDir
	dirs := []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.LogDir(home),
		cfg.DataPath(),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless the file exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), templates.ConfigYAML)
}

// EnsureSourcesFile writes the default sources.yaml unless the file
// exists.
func EnsureSourcesFile(homeDir string) error {
	return ensureFile(config.SourcesFilePath(homeDir), templates.SourcesYAML)
}

// ensureFile creates the parent directory as well, so config.yaml can be
// written before the rest of the directories is known.
func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := touchDir(filepath.Dir(path)); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}
	slog.Info("Created default file", "path", path)
	return nil
}
