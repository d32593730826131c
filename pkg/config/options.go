package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptConsolidateInput sets the candidate extraction stream path.
// Runtime-only field - not in ToOptions().
func OptConsolidateInput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Consolidate Input", s) {
			c.Consolidate.InputPath = s
		}
	}
}

// OptConsolidateOutput sets the consolidated table path.
// Runtime-only field - not in ToOptions().
func OptConsolidateOutput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Consolidate Output", s) {
			c.Consolidate.OutputPath = s
		}
	}
}

// OptConsolidateGazetteer sets the optional gazetteer table path.
// Runtime-only field - not in ToOptions().
func OptConsolidateGazetteer(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Consolidate.GazetteerPath = s
	}
}

// OptConsolidateCorpus sets the optional source corpus path.
// Runtime-only field - not in ToOptions().
func OptConsolidateCorpus(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Consolidate.CorpusPath = s
	}
}

// OptProjectLabs sets the geocoded labs table path.
// Runtime-only field - not in ToOptions().
func OptProjectLabs(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Project Labs", s) {
			c.Project.LabsPath = s
		}
	}
}

// OptProjectEvidence sets the consolidated evidence table path.
// Runtime-only field - not in ToOptions().
func OptProjectEvidence(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Project Evidence", s) {
			c.Project.EvidencePath = s
		}
	}
}

// OptProjectOutput sets the GeoJSON output path.
// Runtime-only field - not in ToOptions().
func OptProjectOutput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Project Output", s) {
			c.Project.OutputPath = s
		}
	}
}

// OptGeocodeEndpoint sets the Nominatim-compatible search endpoint.
func OptGeocodeEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocode Endpoint", s) {
			c.Geocode.Endpoint = s
		}
	}
}

// OptGeocodeUserAgent sets the User-Agent sent to the geocoding
// service.
func OptGeocodeUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocode UserAgent", s) {
			c.Geocode.UserAgent = s
		}
	}
}

// OptGeocodeInput sets the institutions list path.
// Runtime-only field - not in ToOptions().
func OptGeocodeInput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocode Input", s) {
			c.Geocode.InputPath = s
		}
	}
}

// OptGeocodeOutput sets the gazetteer table path to write.
// Runtime-only field - not in ToOptions().
func OptGeocodeOutput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocode Output", s) {
			c.Geocode.OutputPath = s
		}
	}
}

// OptServeHost sets the interface the query service binds.
func OptServeHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Serve Host", s) {
			c.Serve.Host = s
		}
	}
}

// OptServePort sets the TCP port of the query service.
func OptServePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Serve Port", i) {
			c.Serve.Port = i
		}
	}
}

// OptServeData sets the GeoJSON dataset path to serve.
// Runtime-only field - not in ToOptions().
func OptServeData(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Serve Data", s) {
			c.Serve.DataPath = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory used for config, cache and log
// paths. Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}
