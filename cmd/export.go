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
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/ppcollect/internal/iodb"
	"github.com/gnames/ppcollect/internal/ioexport"
	"github.com/gnames/ppcollect/internal/ioschema"
	"github.com/gnames/ppcollect/pkg/ppcollect"
	"github.com/gnames/ppcollect/pkg/schema"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
func getExportCmd() *cobra.Command {
	var flags collectFlags

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the combined dataset to PostgreSQL",
		Long: `Build the combined dataset and write it to the power_plants table
of the PostgreSQL database from the database section of config.yaml.

The table is created or updated when needed. Its previous content is
replaced.

Examples:
  ppcollect export
  PPCOLLECT_DATABASE_HOST=db.example.org ppcollect export -r -s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(flags.options(cmd))
			err := withCollector(cfg, func(c ppcollect.Collector) error {
				return runExport(cmd, c)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addCollectFlags(exportCmd, &flags)
	return exportCmd
}

func runExport(cmd *cobra.Command, c ppcollect.Collector) error {
	ctx := cmd.Context()
	start := time.Now()

	t, err := c.MatchedDataset(ctx, matchedOptions(cfg))
	if err != nil {
		return err
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	if err = ioschema.NewManager(op).Create(ctx); err != nil {
		return err
	}

	n, err := ioexport.New(op, cfg).Export(ctx, t)
	if err != nil {
		return err
	}

	gn.Info("Exported <em>%s</em> power plants to <em>%s</em> in %s",
		humanize.Comma(int64(n)), schema.PowerPlantsTable,
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
