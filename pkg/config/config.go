// Package config provides configuration management for BSLMap.
//
// This package has no I/O dependencies (no file operations, no
// network calls). Validation functions may write user-facing
// warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml
// > defaults
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
//   - Geocode: endpoint, user_agent
//   - Serve: host, port
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Consolidate.InputPath/OutputPath/GazetteerPath/CorpusPath
//   - Project.LabsPath/EvidencePath/OutputPath
//   - Geocode.InputPath/OutputPath
//   - Serve.DataPath
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BSLMAP_ prefix with underscores for nesting:
//
//	BSLMAP_GEOCODE_ENDPOINT=https://nominatim.openstreetmap.org/search
//	BSLMAP_SERVE_PORT=8080
//	BSLMAP_LOG_LEVEL=info
//	BSLMAP_JOBS_NUMBER=4
package config

import (
	"runtime"
)

// Config represents the complete BSLMap configuration.
type Config struct {
	// Consolidate contains settings specific to the consolidate
	// command.
	Consolidate ConsolidateConfig `mapstructure:"consolidate" yaml:"consolidate"`

	// Project contains settings specific to the geojson command.
	Project ProjectConfig `mapstructure:"project" yaml:"project"`

	// Geocode contains settings specific to the gazetteer command.
	Geocode GeocodeConfig `mapstructure:"geocode" yaml:"geocode"`

	// Serve contains settings for the read-only query service.
	Serve ServeConfig `mapstructure:"serve" yaml:"serve"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations (currently only geocoding). Default follows the
	// number of available threads, capped for politeness to the
	// geocoding service.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. It must be set by CLI during init, there is no default
	// value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// ConsolidateConfig contains settings for one consolidation run.
// All fields are runtime-only (CLI flags).
type ConsolidateConfig struct {
	// InputPath is the candidate extraction stream (JSONL). The run
	// fails when it cannot be read.
	InputPath string `mapstructure:"-" yaml:"-"`

	// OutputPath is the consolidated table (CSV). Parent directories
	// are created as needed.
	OutputPath string `mapstructure:"-" yaml:"-"`

	// GazetteerPath is the optional reference gazetteer table.
	// A missing file degrades to an empty lookup.
	GazetteerPath string `mapstructure:"-" yaml:"-"`

	// CorpusPath is the optional source corpus (JSONL) used for
	// affiliation hints. A missing file is not fatal.
	CorpusPath string `mapstructure:"-" yaml:"-"`
}

// ProjectConfig contains settings for the GeoJSON projection.
// All fields are runtime-only (CLI flags).
type ProjectConfig struct {
	// LabsPath is the gazetteer table with geocoded labs.
	LabsPath string `mapstructure:"-" yaml:"-"`

	// EvidencePath is the consolidated table from a consolidate run.
	EvidencePath string `mapstructure:"-" yaml:"-"`

	// OutputPath is the GeoJSON dataset to write.
	OutputPath string `mapstructure:"-" yaml:"-"`
}

// GeocodeConfig contains settings for gazetteer building.
type GeocodeConfig struct {
	// Endpoint is the Nominatim-compatible search endpoint.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// UserAgent identifies the client to the geocoding service, as
	// its usage policy requires.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

	// InputPath is the plain-text institutions list, one name per
	// line. Runtime-only.
	InputPath string `mapstructure:"-" yaml:"-"`

	// OutputPath is the gazetteer table to write. Existing rows are
	// reused to avoid re-geocoding. Runtime-only.
	OutputPath string `mapstructure:"-" yaml:"-"`
}

// ServeConfig contains settings for the query service.
type ServeConfig struct {
	// Host is the interface to bind.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the TCP port to listen on.
	Port int `mapstructure:"port" yaml:"port"`

	// DataPath is the GeoJSON dataset to serve. Runtime-only.
	DataPath string `mapstructure:"-" yaml:"-"`
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
	jobs := runtime.NumCPU()
	if jobs > 4 {
		jobs = 4
	}
	return &Config{
		Geocode: GeocodeConfig{
			Endpoint:  "https://nominatim.openstreetmap.org/search",
			UserAgent: "BSLMap/1.0 (https://github.com/bsldata/bslmap)",
		},
		Serve: ServeConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: jobs,
	}
}
