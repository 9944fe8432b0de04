package cmd

import (
	"github.com/gnames/ppcollect/pkg/config"
	"github.com/gnames/ppcollect/pkg/ppcollect"
	"github.com/spf13/cobra"
)

// collectFlags are the flags of the combined dataset. Only flags set on
// the command line override config.yaml.
type collectFlags struct {
	rescaledHydros      bool
	subsumeUncommon     bool
	includeUnavailables bool
}

func addCollectFlags(cmd *cobra.Command, f *collectFlags) {
	cmd.Flags().BoolVarP(
		&f.rescaledHydros, "rescaled-hydros", "r", false,
		"use hydro capacities scaled to reference statistics",
	)
	cmd.Flags().BoolVarP(
		&f.subsumeUncommon, "subsume-uncommon", "s", false,
		"relabel Geothermal, Waste and Mixed Fueltypes as Other",
	)
	cmd.Flags().BoolVarP(
		&f.includeUnavailables, "include-unavailables", "u", false,
		"use the five-source table with ESE and FIAS records",
	)
}

func (f *collectFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("rescaled-hydros") {
		res = append(res, config.OptCollectRescaledHydros(f.rescaledHydros))
	}
	if cmd.Flags().Changed("subsume-uncommon") {
		res = append(res,
			config.OptCollectSubsumeUncommonFueltypes(f.subsumeUncommon))
	}
	if cmd.Flags().Changed("include-unavailables") {
		res = append(res,
			config.OptCollectIncludeUnavailables(f.includeUnavailables))
	}
	return res
}

// updateOptions turns --update into the runtime Collect.Update option
// when the flag is set on the command line.
func updateOptions(cmd *cobra.Command, update bool) []config.Option {
	if !cmd.Flags().Changed("update") {
		return nil
	}
	return []config.Option{config.OptCollectUpdate(update)}
}

func matchedOptions(cfg *config.Config) ppcollect.MatchedOptions {
	return ppcollect.MatchedOptions{
		RescaledHydros:           cfg.Collect.RescaledHydros,
		SubsumeUncommonFueltypes: cfg.Collect.SubsumeUncommonFueltypes,
		IncludeUnavailables:      cfg.Collect.IncludeUnavailables,
	}
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(
		output, "output", "o", "",
		"write CSV to this file instead of printing a summary",
	)
}

func addFiveSourceFlag(cmd *cobra.Command, fiveSource *bool) {
	cmd.Flags().BoolVarP(
		fiveSource, "five-source", "f", false,
		"use the table with ESE and FIAS records",
	)
}
