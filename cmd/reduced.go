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
	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/pkg/ppcollect"
	"github.com/gnames/ppcollect/pkg/table"
	"github.com/spf13/cobra"
)

// getReducedCmd returns the reduced command.
func getReducedCmd() *cobra.Command {
	var fiveSource bool
	var output string

	reducedCmd := &cobra.Command{
		Use:   "reduced",
		Short: "Read a reduced matched table",
		Long: `Read a reduced matched table from the cache. Every row is one
consolidated power plant, the projectID column tells which registry
records it was built from.

Examples:
  ppcollect reduced
  ppcollect reduced --five-source -o reduced.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withCollector(cfg, func(c ppcollect.Collector) error {
				return runReduced(cmd, c, fiveSource, output)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addFiveSourceFlag(reducedCmd, &fiveSource)
	addOutputFlag(reducedCmd, &output)
	return reducedCmd
}

func runReduced(
	cmd *cobra.Command,
	c ppcollect.Collector,
	fiveSource bool,
	output string,
) error {
	ctx := cmd.Context()
	var t *table.Table
	var err error

	title := "Reduced CARMA, GEO, OPSD, WRI"
	if fiveSource {
		title = "Reduced CARMA, ESE_FIAS, GEO, OPSD, WRI"
		t, err = c.CarmaEseFiasGeoOpsdWriMatchedReduced(ctx)
	} else {
		t, err = c.CarmaGeoOpsdWriMatchedReduced(ctx)
	}
	if err != nil {
		return err
	}

	if output != "" {
		return writeTable(cmd.OutOrStdout(), output, t)
	}
	printTableSummary(cmd.OutOrStdout(), title, t)
	return nil
}
