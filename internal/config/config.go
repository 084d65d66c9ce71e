// Public domain.

// Package config loads comove run configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/soniakeys/comove/internal/pipeline"
)

// Config holds a comove run configuration.
type Config struct {
	Clustering    ClusteringConfig `yaml:"clustering"`
	Features      []string         `yaml:"features"`
	GalacticFrame string           `yaml:"galactic_frame"` // j2000 (default), b1950
	Workers       int              `yaml:"workers"`        // 0 = GOMAXPROCS
	Logging       LoggingConfig    `yaml:"logging"`
	Metrics       MetricsConfig    `yaml:"metrics"`
}

// ClusteringConfig holds DBSCAN parameters.
type ClusteringConfig struct {
	Eps        float64 `yaml:"eps"`
	MinSamples int     `yaml:"min_samples"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // local, dev, prod (default: local)
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // node exporter textfile path, empty to disable
}

// Default clustering parameters.
const (
	DefaultEps        = .1
	DefaultMinSamples = 5
)

// Default returns the configuration used when no file is given.
func Default() Config {
	c := Config{Clustering: ClusteringConfig{
		Eps:        DefaultEps,
		MinSamples: DefaultMinSamples,
	}}
	c.ApplyDefaults()
	return c
}

// Load reads configuration from a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML configuration over Default, then applies defaults and
// validates.  Only keys absent from data keep their default values.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
//
// Clustering parameters are left alone.  Zero is an invalid eps or
// min_samples, not a missing one, and must fail validation.
func (c *Config) ApplyDefaults() {
	if len(c.Features) == 0 {
		c.Features = append([]string(nil), pipeline.DefaultFeatures...)
	}
	if c.GalacticFrame == "" {
		c.GalacticFrame = "j2000"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "local"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if !(c.Clustering.Eps > 0) {
		return fmt.Errorf("clustering.eps must be positive, got %g", c.Clustering.Eps)
	}
	if c.Clustering.MinSamples < 1 {
		return fmt.Errorf("clustering.min_samples must be at least 1, got %d",
			c.Clustering.MinSamples)
	}
	seen := map[string]bool{}
	for _, f := range c.Features {
		if !slices.Contains(pipeline.FeatureNames(), f) {
			return fmt.Errorf("features: unknown feature %q", f)
		}
		if seen[f] {
			return fmt.Errorf("features: %q listed twice", f)
		}
		seen[f] = true
	}
	switch c.GalacticFrame {
	case "j2000", "b1950":
	default:
		return fmt.Errorf("galactic_frame must be \"j2000\" or \"b1950\", got %q",
			c.GalacticFrame)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
