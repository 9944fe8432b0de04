// Package iosources loads sources.yaml and gives access to the raw
// registries it describes. Remote registries are downloaded into the cache
// directory once and reused afterwards.
package iosources

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gnames/ppcollect/internal/iocsv"
	"github.com/gnames/ppcollect/pkg/config"
	"github.com/gnames/ppcollect/pkg/sources"
	"github.com/gnames/ppcollect/pkg/table"
)

type iosources struct {
	cfg *config.Config

	once   sync.Once
	srcCfg *sources.SourcesConfig
	err    error
}

// NewRegistry creates a raw-registry loader driven by sources.yaml.
func NewRegistry(cfg *config.Config) sources.Registry {
	res := iosources{cfg: cfg}
	return &res
}

// load reads sources.yaml of the configured home directory.
func (s *iosources) load() (*sources.SourcesConfig, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)
	sourcesConfig, err := loadSourcesConfig(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	return sourcesConfig, nil
}

// Raw loads the raw registry ds. The sources.yaml file is read on the
// first call only.
func (s *iosources) Raw(
	ctx context.Context,
	ds sources.Dataset,
) (*table.Table, error) {
	s.once.Do(func() {
		s.srcCfg, s.err = s.load()
	})
	if s.err != nil {
		return nil, s.err
	}

	dc, ok := s.srcCfg.Find(ds)
	if !ok {
		return nil, NotConfiguredError(
			string(ds), config.SourcesFilePath(s.cfg.HomeDir),
		)
	}

	path := dc.Path
	if dc.IsURL() {
		var err error
		dir := config.CacheDir(s.cfg.HomeDir)
		path, err = download(ctx, dc.Path, dir, fileName(string(ds), dc.Path))
		if err != nil {
			return nil, FetchError(string(ds), dc.Path, err)
		}
	}

	res, err := iocsv.ReadTableFile(path, dc.IndexColumn)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded raw dataset",
		"dataset", ds, "path", path, "rows", res.Len())
	return res, nil
}
