// Package detectors binds tabular datasets to fairness analyses.
//
// A FairnessDetector holds the column configuration (target and sensitive
// attributes), optionally a loaded dataset, and dispatches to the metrics
// and compliance packages.
package detectors

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfiguration is returned when required configuration is missing or
	// invalid.
	ErrConfiguration = errors.New("invalid detector configuration")
	// ErrNoData is returned when no dataset was passed or loaded.
	ErrNoData = errors.Wrap(ErrConfiguration, "no data provided, call LoadData or pass a table")
	// ErrSchema is returned when a configured column is absent from the data.
	ErrSchema = errors.New("column not found in data")
)

// Config holds the configuration of a FairnessDetector.
type Config struct {
	// SensitiveAttributes are the protected-attribute columns, in order.
	// Single-attribute analyses use the first one.
	SensitiveAttributes []string `json:"sensitive_attributes" yaml:"sensitive_attributes"`
	// Target is the label column. It is the ground truth for odds metrics
	// and, absent explicit predictions, also the outcome being audited.
	Target string `json:"target" yaml:"target"`
	// Threshold is the absolute metric value above which bias is reported.
	Threshold float64 `json:"threshold" yaml:"threshold"`
	// Verbose enables logging of configuration changes and results.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// DefaultConfig returns sensible defaults for detector configuration.
func DefaultConfig() Config {
	return Config{
		Threshold: 0.1,
	}
}

// Validate checks that the threshold lies in [0, 1].
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return errors.Wrapf(ErrConfiguration, "threshold must be between 0 and 1, got %v", c.Threshold)
	}
	return nil
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) clone() Config {
	c.SensitiveAttributes = append([]string(nil), c.SensitiveAttributes...)
	return c
}
