package iosources

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/ppcollect/pkg/sources"
	"gopkg.in/yaml.v3"
)

// loadSourcesConfig reads and validates sources.yaml from disk.
// It performs both data structure validation (via
// sources.SourcesConfig.Validate) and file system validation of local
// paths.
func loadSourcesConfig(path string) (*sources.SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config file: %w", err)
	}

	var config sources.SourcesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse sources config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := validateSourcesFileSystem(&config); err != nil {
		return nil, err
	}

	for _, w := range config.Warnings {
		slog.Warn("Source configuration warning", "message", w)
	}

	return &config, nil
}

// validateSourcesFileSystem expands "~/" and checks that local files exist.
func validateSourcesFileSystem(config *sources.SourcesConfig) error {
	for i := range config.Datasets {
		ds := &config.Datasets[i]
		// URLs are checked at fetch time
		if ds.IsURL() {
			continue
		}

		path, err := expandHome(ds.Path)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
		ds.Path = path

		stat, err := os.Stat(path)
		if os.IsNotExist(err) {
			return fmt.Errorf("dataset %s: file does not exist: %s",
				ds.Name, path)
		}
		if err != nil {
			return fmt.Errorf("dataset %s: failed to check file: %w",
				ds.Name, err)
		}
		if stat.IsDir() {
			return fmt.Errorf("dataset %s: path is a directory: %s",
				ds.Name, path)
		}
	}
	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand ~: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}
