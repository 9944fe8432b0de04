// Package ioexport writes the combined power-plant dataset to
// PostgreSQL. Rows are converted in one goroutine and bulk-inserted with
// COPY in another.
package ioexport

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/ppcollect/pkg/config"
	"github.com/gnames/ppcollect/pkg/db"
	"github.com/gnames/ppcollect/pkg/ppcollect"
	"github.com/gnames/ppcollect/pkg/schema"
	"github.com/gnames/ppcollect/pkg/table"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

type exporter struct {
	operator  db.Operator
	batchSize int
}

// New creates an Exporter. The operator has to be connected and the
// schema created before Export is called.
func New(op db.Operator, cfg *config.Config) ppcollect.Exporter {
	batchSize := cfg.Database.BatchSize
	if batchSize <= 0 {
		batchSize = 10_000
	}
	return &exporter{operator: op, batchSize: batchSize}
}

type batch struct {
	offset int
	rows   [][]any
}

func (e *exporter) Export(
	ctx context.Context,
	t *table.Table,
) (int, error) {
	pool := e.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}
	start := time.Now()

	tbl := schema.PowerPlantsTable
	if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+tbl); err != nil {
		return 0, TruncateError(tbl, err)
	}

	columns := schema.Columns()
	chBatch := make(chan batch)
	g, gCtx := errgroup.WithContext(ctx)

	// Stage 1: convert rows into batches.
	g.Go(func() error {
		defer close(chBatch)
		for i := 0; i < t.Len(); i += e.batchSize {
			end := min(i+e.batchSize, t.Len())
			rows := make([][]any, 0, end-i)
			for j := i; j < end; j++ {
				rows = append(rows, PowerPlant(t, j).Values())
			}
			select {
			case chBatch <- batch{offset: i, rows: rows}:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	// Stage 2: bulk insert.
	var total int
	g.Go(func() error {
		bar := newProgressBar(t.Len(), "Exporting power plants: ")
		defer bar.Finish()

		for b := range chBatch {
			n, err := pool.CopyFrom(
				gCtx,
				pgx.Identifier{tbl},
				columns,
				pgx.CopyFromRows(b.rows),
			)
			if err != nil {
				return CopyError(tbl, b.offset, err)
			}
			total += int(n)
			bar.Add(len(b.rows))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("Export failed", "table", tbl, "error", err)
		}
		return total, err
	}

	slog.Info("Exported power plants",
		"table", tbl,
		"rows", humanize.Comma(int64(total)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return total, nil
}
