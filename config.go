package weld

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/xraph/weld/errors"
	"github.com/xraph/weld/logger"
)

// envPrefix is the prefix for environment overrides, e.g. WELD_MAX_ERRORS.
const envPrefix = "WELD"

// Config controls pipeline behavior. Values come from DefaultConfig,
// optionally overridden by a YAML file and then by environment variables.
type Config struct {
	// Logging configures the pipeline's structured logger.
	Logging logger.Config `yaml:"logging" envconfig:"LOGGING"`

	// MaxErrors caps how many diagnostics are stored per run. Errors past
	// the cap are counted but not kept. Zero means unlimited.
	MaxErrors int `yaml:"max_errors" envconfig:"MAX_ERRORS"`

	// ValidateGraph enables the external graph validation phase when a
	// validator is attached.
	ValidateGraph bool `yaml:"validate_graph" envconfig:"VALIDATE_GRAPH"`

	// DumpGraph logs a rendering of the resolved scope tree after a
	// successful run.
	DumpGraph bool `yaml:"dump_graph" envconfig:"DUMP_GRAPH"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Logging:       logger.Config{Level: "info", Format: "console"},
		MaxErrors:     100,
		ValidateGraph: true,
	}
}

// LoadConfig builds a Config from defaults, an optional YAML file, and
// environment overrides, in that order.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.ErrInvalidConfig(path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.ErrInvalidConfig(path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, errors.ErrInvalidConfig("environment", err)
	}

	return cfg, nil
}
