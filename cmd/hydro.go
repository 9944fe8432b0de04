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
	"github.com/spf13/cobra"
)

// getHydroCmd returns the hydro command.
func getHydroCmd() *cobra.Command {
	var scaled, update bool
	var output string

	hydroCmd := &cobra.Command{
		Use:   "hydro",
		Short: "Read the hydro aggregation table",
		Long: `Read the hydro aggregation from the cache.

By default capacities are scaled to reference statistics, use
--scaled=false for the original capacities. Recomputing the hydro
aggregation is not implemented, --update returns an error.

Examples:
  ppcollect hydro
  ppcollect hydro --scaled=false -o hydro.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(updateOptions(cmd, update))
			err := withCollector(cfg, func(c ppcollect.Collector) error {
				return runHydro(cmd, c, scaled, output)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	hydroCmd.Flags().BoolVar(
		&scaled, "scaled", true,
		"replace Capacity with Scaled Capacity",
	)
	hydroCmd.Flags().BoolVar(
		&update, "update", false,
		"recompute the aggregation (not implemented)",
	)
	addOutputFlag(hydroCmd, &output)
	return hydroCmd
}

func runHydro(
	cmd *cobra.Command,
	c ppcollect.Collector,
	scaled bool,
	output string,
) error {
	t, err := c.AggregatedHydro(cmd.Context(), cfg.Collect.Update, scaled)
	if err != nil {
		return err
	}
	if output != "" {
		return writeTable(cmd.OutOrStdout(), output, t)
	}
	printTableSummary(cmd.OutOrStdout(), "Hydro aggregation", t)
	return nil
}
