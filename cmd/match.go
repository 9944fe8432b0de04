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

// getMatchCmd returns the match command.
func getMatchCmd() *cobra.Command {
	var fiveSource, update bool

	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Read or recompute a matched table",
		Long: `Read a matched table from the cache and print how many records every
registry contributes.

With --update the raw registries listed in sources.yaml are cleaned,
linked and the cache entry is overwritten.

  four-source table: CARMA, GEO, OPSD, WRI
  five-source table: CARMA, ESE_FIAS, GEO, OPSD, WRI

Examples:
  # Summary of the cached four-source table
  ppcollect match

  # Recompute the five-source table
  ppcollect match --five-source --update`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(updateOptions(cmd, update))
			err := withCollector(cfg, func(c ppcollect.Collector) error {
				return runMatch(cmd, c, fiveSource)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addFiveSourceFlag(matchCmd, &fiveSource)
	matchCmd.Flags().BoolVar(
		&update, "update", false,
		"recompute the table from raw registries",
	)
	return matchCmd
}

func runMatch(
	cmd *cobra.Command,
	c ppcollect.Collector,
	fiveSource bool,
) error {
	ctx := cmd.Context()
	update := cfg.Collect.Update
	var m *table.Matched
	var err error

	title := "Matched CARMA, GEO, OPSD, WRI"
	if fiveSource {
		title = "Matched CARMA, ESE_FIAS, GEO, OPSD, WRI"
		m, err = c.CarmaEseFiasGeoOpsdWriMatched(ctx, update)
	} else {
		m, err = c.CarmaGeoOpsdWriMatched(ctx, update)
	}
	if err != nil {
		return err
	}
	return printMatchedSummary(cmd.OutOrStdout(), title, m)
}
