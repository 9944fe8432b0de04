/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/internal/iocsv"
	"github.com/gnames/ppcollect/internal/iosqlite"
	"github.com/gnames/ppcollect/pkg/cache"
	"github.com/gnames/ppcollect/pkg/config"
	"github.com/spf13/cobra"
)

// getCacheCmd returns the cache command with its subcommands.
func getCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached tables",
	}
	cacheCmd.AddCommand(getCacheSyncCmd())
	return cacheCmd
}

func getCacheSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy cached CSV tables into the SQLite store",
		Long: `Copy every cached CSV table of the data directory into the SQLite
cache store (cache.sqlite in the same directory). Existing SQLite
entries are overwritten, missing CSV files are skipped.

Set data.backend to sqlite in config.yaml afterwards to read from it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCacheSync(cmd.Context(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runCacheSync(ctx context.Context, cfg *config.Config) error {
	dir := cfg.DataPath()
	dst, err := iosqlite.Open(config.SQLiteFilePath(dir))
	if err != nil {
		return err
	}
	defer dst.Close()

	n, err := syncCache(ctx, iocsv.New(dir), dst)
	if err != nil {
		return err
	}
	gn.Info("Copied <em>%s</em> tables to <em>%s</em>",
		humanize.Comma(int64(n)), config.SQLiteFilePath(dir))
	return nil
}

// syncCache copies all known keys present in src to dst and returns the
// number of copied tables.
func syncCache(ctx context.Context, src, dst cache.Store) (int, error) {
	var count int
	for _, key := range cache.Keys() {
		ok, err := src.Exists(ctx, key)
		if err != nil {
			return count, err
		}
		if !ok {
			gn.Warn("Skipping <em>%s</em>, it is not cached", string(key))
			continue
		}

		switch cache.ShapeOf(key) {
		case cache.ShapeMatched:
			m, err := src.ReadMatched(ctx, key)
			if err != nil {
				return count, err
			}
			if err = dst.WriteMatched(ctx, key, m); err != nil {
				return count, err
			}
		default:
			t, err := src.ReadTable(ctx, key)
			if err != nil {
				return count, err
			}
			if err = dst.WriteTable(ctx, key, t); err != nil {
				return count, err
			}
		}
		count++
	}
	return count, nil
}
