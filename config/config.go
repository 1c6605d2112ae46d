package config

// This file contains the benchmark configuration surface: YAML loading,
// defaults and fail-fast validation.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration of one benchmark session.
type Config struct {
	// Solver executable to invoke (e.g. "minizinc")
	Solver string `yaml:"solver"`
	// Solver backend passed via --solver (e.g. "gecode", "chuffed")
	Backend string `yaml:"backend"`
	// Extra arguments appended to every solver invocation
	ExtraArgs []string `yaml:"extra_args"`
	// Directory holding the model files
	ModelsDir string `yaml:"models_dir"`
	// Directory holding the instance data files
	DataDir string `yaml:"data_dir"`
	// Ordered list of model identifiers to benchmark
	Models []string `yaml:"models"`
	// Ordered list of instance identifiers to benchmark
	Instances []string `yaml:"instances"`
	// Number of repetitions per model-instance pair
	Repetitions int `yaml:"repetitions"`
	// Wall-clock limit per run, in seconds
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// Maximum number of solver processes in flight at once
	Workers int `yaml:"workers"`
	// Directory for timestamped result files when Output is unset
	ResultsDir string `yaml:"results_dir"`
	// Explicit result file path; overrides ResultsDir
	Output string `yaml:"output"`
}

// ConfigurationError reports invalid configuration detected before any
// run starts. It is the only error that aborts a session.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Solver:         "minizinc",
		Backend:        "gecode",
		ModelsDir:      "models",
		DataDir:        "data",
		Repetitions:    1,
		TimeoutSeconds: 300,
		Workers:        1,
		ResultsDir:     "results",
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// If path is empty, the default file names are searched in order; if
// none exists the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		found := false
		for _, name := range []string{"mzbench.yaml", ".mzbench.yaml"} {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration before the first invocation.
func (c *Config) Validate() error {
	if c.Solver == "" {
		return &ConfigurationError{Field: "solver", Reason: "solver command must not be empty"}
	}
	if len(c.Models) == 0 {
		return &ConfigurationError{Field: "models", Reason: "at least one model is required"}
	}
	if len(c.Instances) == 0 {
		return &ConfigurationError{Field: "instances", Reason: "at least one instance is required"}
	}
	if c.Repetitions < 1 {
		return &ConfigurationError{Field: "repetitions", Reason: "must be >= 1"}
	}
	if c.TimeoutSeconds < 1 {
		return &ConfigurationError{Field: "timeout_seconds", Reason: "must be >= 1"}
	}
	if c.Workers < 1 {
		return &ConfigurationError{Field: "workers", Reason: "must be >= 1"}
	}
	if c.Output == "" && c.ResultsDir == "" {
		return &ConfigurationError{Field: "output", Reason: "either output or results_dir must be set"}
	}
	return nil
}

// Timeout returns the per-run wall-clock limit.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ModelPath resolves a model identifier to a file path. Identifiers
// without an extension get the MiniZinc model suffix.
func (c *Config) ModelPath(id string) string {
	if filepath.Ext(id) == "" {
		id += ".mzn"
	}
	return filepath.Join(c.ModelsDir, id)
}

// DataPath resolves an instance identifier to a data file path.
func (c *Config) DataPath(id string) string {
	if filepath.Ext(id) == "" {
		id += ".dzn"
	}
	return filepath.Join(c.DataDir, id)
}

// OutputPath returns the result file path for a session starting at now:
// the explicit output path if set, otherwise a timestamped file under the
// results directory.
func (c *Config) OutputPath(now time.Time) string {
	if c.Output != "" {
		return c.Output
	}
	return filepath.Join(c.ResultsDir, fmt.Sprintf("benchmark_%s.csv", now.Format("20060102_150405")))
}
