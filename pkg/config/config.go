// Package config provides configuration management for ppcollect.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Data: dir, backend
//   - Collect: rescaled_hydros, subsume_uncommon_fueltypes,
//     include_unavailables
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Collect.Update (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use PPCOLLECT_ prefix with underscores for nesting:
//
//	PPCOLLECT_DATA_DIR=/srv/powerplants
//	PPCOLLECT_COLLECT_RESCALED_HYDROS=true
//	PPCOLLECT_DATABASE_HOST=localhost
//	PPCOLLECT_LOG_LEVEL=info
package config

// Config represents the complete ppcollect configuration.
type Config struct {
	// Data describes where cached tables are kept.
	Data DataConfig `mapstructure:"data" yaml:"data"`

	// Collect contains defaults for building the combined dataset.
	Collect CollectConfig `mapstructure:"collect" yaml:"collect"`

	// Database contains PostgreSQL connection settings used by export.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DataConfig describes the cache store.
type DataConfig struct {
	// Dir is the directory with cached tables. When empty, DataDir(HomeDir)
	// is used.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Backend selects the cache store implementation.
	// Valid values: "csv", "sqlite".
	Backend string `mapstructure:"backend" yaml:"backend"`
}

// CollectConfig contains flags of the combined dataset.
type CollectConfig struct {
	// RescaledHydros replaces hydro capacities with capacities scaled to
	// reference statistics.
	RescaledHydros bool `mapstructure:"rescaled_hydros" yaml:"rescaled_hydros"`

	// SubsumeUncommonFueltypes relabels "Geothermal", "Waste" and
	// "Mixed Fueltypes" as "Other".
	SubsumeUncommonFueltypes bool `mapstructure:"subsume_uncommon_fueltypes" yaml:"subsume_uncommon_fueltypes"`

	// IncludeUnavailables uses the five-source reduced table (with ESE and
	// FIAS) instead of the four-source one.
	IncludeUnavailables bool `mapstructure:"include_unavailables" yaml:"include_unavailables"`

	// Update forces recomputation of matched tables.
	// Runtime-only field.
	Update bool `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows sent per CopyFrom call during
	// export.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Data: DataConfig{
			Backend: "csv",
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "powerplants",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// DataPath returns the directory with cached tables, falling back to
// DataDir(HomeDir) when Data.Dir is not set.
func (c *Config) DataPath() string {
	if c.Data.Dir != "" {
		return c.Data.Dir
	}
	return DataDir(c.HomeDir)
}
