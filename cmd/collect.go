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
	"github.com/gnames/ppcollect/pkg/ppcollect"
	"github.com/spf13/cobra"
)

// getCollectCmd returns the collect command.
func getCollectCmd() *cobra.Command {
	var flags collectFlags
	var output string

	collectCmd := &cobra.Command{
		Use:   "collect",
		Short: "Build the combined power plant dataset",
		Long: `Build the combined dataset and write it as CSV.

The reduced matched table is extended by GEO records that were not
linked, hydro plants are replaced by the hydro aggregation and rows are
numbered from 0. Without -o the CSV goes to STDOUT.

Flags override the collect section of config.yaml.

Examples:
  ppcollect collect > powerplants.csv
  ppcollect collect -r -s -o powerplants.csv
  ppcollect collect --include-unavailables`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(flags.options(cmd))
			err := withCollector(cfg, func(c ppcollect.Collector) error {
				return runCollect(cmd, c, output)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addCollectFlags(collectCmd, &flags)
	collectCmd.Flags().StringVarP(
		&output, "output", "o", "",
		"write CSV to this file instead of STDOUT",
	)
	return collectCmd
}

func runCollect(
	cmd *cobra.Command,
	c ppcollect.Collector,
	output string,
) error {
	start := time.Now()
	t, err := c.MatchedDataset(cmd.Context(), matchedOptions(cfg))
	if err != nil {
		return err
	}
	if err = writeTable(cmd.OutOrStdout(), output, t); err != nil {
		return err
	}
	if output != "" {
		gn.Info("Collected <em>%s</em> power plants in %s",
			humanize.Comma(int64(t.Len())),
			gnfmt.TimeString(time.Since(start).Seconds()),
		)
	}
	return nil
}
