package cmd

import (
	"github.com/gnames/ppcollect/internal/ioclean"
	"github.com/gnames/ppcollect/internal/iocollect"
	"github.com/gnames/ppcollect/internal/iocsv"
	"github.com/gnames/ppcollect/internal/iomatch"
	"github.com/gnames/ppcollect/internal/iosources"
	"github.com/gnames/ppcollect/internal/iosqlite"
	"github.com/gnames/ppcollect/pkg/cache"
	"github.com/gnames/ppcollect/pkg/config"
	"github.com/gnames/ppcollect/pkg/matching"
	"github.com/gnames/ppcollect/pkg/ppcollect"
)

// openStore returns the cache store selected by data.backend and a
// function that releases it.
func openStore(cfg *config.Config) (cache.Store, func() error, error) {
	dir := cfg.DataPath()
	if cfg.Data.Backend == "sqlite" {
		st, err := iosqlite.Open(config.SQLiteFilePath(dir))
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	}
	return iocsv.New(dir), func() error { return nil }, nil
}

func newCollector(
	cfg *config.Config,
	store cache.Store,
) ppcollect.Collector {
	m := iomatch.New()
	return iocollect.New(
		store,
		iosources.NewRegistry(cfg),
		matching.Collaborators{
			Cleaner:  ioclean.New(),
			Matcher:  m,
			Extender: m,
		},
	)
}

// withCollector opens the cache store, runs fn and closes the store.
func withCollector(
	cfg *config.Config,
	fn func(ppcollect.Collector) error,
) error {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()
	return fn(newCollector(cfg, store))
}
