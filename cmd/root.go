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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/internal/iofs"
	"github.com/gnames/ppcollect/internal/iologger"
	app "github.com/gnames/ppcollect/pkg"
	"github.com/gnames/ppcollect/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	cfgFile   string
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd builds the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "ppcollect",
		Short:   "Collects power plant registries into one dataset",
		Long: `ppcollect combines power plant registries (CARMA, GEO, OPSD, WRI,
ESE, FIAS) into one dataset.

Matched tables link records of several registries, reduced tables keep
one consolidated record per linked plant. Both are cached in the data
directory together with the hydro aggregation. The combined dataset
extends the reduced table with GEO records that were not linked, replaces
hydro plants with the hydro aggregation and can be printed as CSV or
exported to PostgreSQL.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (PPCOLLECT_*)
  3. Config file (~/.config/ppcollect/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host -> PPCOLLECT_DATABASE_HOST).
  A .env file in the working directory is loaded first when present.

  Examples:
    PPCOLLECT_DATA_DIR                     directory with cached tables
    PPCOLLECT_DATA_BACKEND                 csv or sqlite
    PPCOLLECT_COLLECT_RESCALED_HYDROS      true/false
    PPCOLLECT_DATABASE_HOST                PostgreSQL host
    PPCOLLECT_LOG_LEVEL                    debug, info, warn, error`,
		PersistentPreRunE: bootstrap,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "ppcollect version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for ppcollect")
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "",
		"config file (default ~/.config/ppcollect/config.yaml)",
	)

	rootCmd.AddCommand(
		getMatchCmd(),
		getReducedCmd(),
		getHydroCmd(),
		getCollectCmd(),
		getExportCmd(),
		getCacheCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// .env is optional
	_ = godotenv.Load()

	if cfg, err = loadConfig(homeDir, cfgFile); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureSourcesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", configPath(homeDir, cfgFile),
		"data_dir", cfg.DataPath(),
		"backend", cfg.Data.Backend,
	)
	return nil
}

// loadConfig creates default config.yaml when needed and converts the
// values from the file and the environment to a valid Config.
func loadConfig(home, file string) (*config.Config, error) {
	if file == "" {
		if err := iofs.EnsureConfigFile(home); err != nil {
			return nil, err
		}
	}

	cfgViper, err := initConfig(configPath(home, file))
	if err != nil {
		return nil, err
	}

	res := config.New()
	res.Update(cfgViper.ToOptions())
	res.Update([]config.Option{config.OptHomeDir(home)})
	return res, nil
}

func configPath(home, file string) string {
	if file != "" {
		return file
	}
	return config.ConfigFilePath(home)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(cfgPath string) (*config.Config, error) {
	var err error
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("PPCOLLECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Data configuration
	_ = v.BindEnv("data.dir", "PPCOLLECT_DATA_DIR")
	_ = v.BindEnv("data.backend", "PPCOLLECT_DATA_BACKEND")

	// Collect configuration
	_ = v.BindEnv("collect.rescaled_hydros", "PPCOLLECT_COLLECT_RESCALED_HYDROS")
	_ = v.BindEnv("collect.subsume_uncommon_fueltypes",
		"PPCOLLECT_COLLECT_SUBSUME_UNCOMMON_FUELTYPES")
	_ = v.BindEnv("collect.include_unavailables",
		"PPCOLLECT_COLLECT_INCLUDE_UNAVAILABLES")

	// Database configuration
	_ = v.BindEnv("database.host", "PPCOLLECT_DATABASE_HOST")
	_ = v.BindEnv("database.port", "PPCOLLECT_DATABASE_PORT")
	_ = v.BindEnv("database.user", "PPCOLLECT_DATABASE_USER")
	_ = v.BindEnv("database.password", "PPCOLLECT_DATABASE_PASSWORD")
	_ = v.BindEnv("database.database", "PPCOLLECT_DATABASE_DATABASE")
	_ = v.BindEnv("database.ssl_mode", "PPCOLLECT_DATABASE_SSL_MODE")
	_ = v.BindEnv("database.batch_size", "PPCOLLECT_DATABASE_BATCH_SIZE")

	// Log configuration
	_ = v.BindEnv("log.level", "PPCOLLECT_LOG_LEVEL")
	_ = v.BindEnv("log.format", "PPCOLLECT_LOG_FORMAT")
	_ = v.BindEnv("log.destination", "PPCOLLECT_LOG_DESTINATION")

	v.AutomaticEnv()
}
