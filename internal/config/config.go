// Package config provides configuration management for the locus CLI.
// Configuration is resolved from (highest to lowest priority):
// 1. Command-line flags (applied by the caller)
// 2. Environment variables (LOCUS_*)
// 3. The config file, when one is given
// 4. Defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/locus/internal/induction"
	"github.com/aretw0/locus/internal/logging"
)

// Config holds all locus configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Coverage is the parameter coverage policy (exact, lenient).
	Coverage string `yaml:"coverage" json:"coverage"`

	// ReplacePredicates drops the declared predicates and operator trees
	// before synthesis. Nil in a file means "not set".
	ReplacePredicates *bool `yaml:"replace_predicates" json:"replace_predicates"`

	// MetricsAddr enables the Prometheus endpoint when not empty.
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`

	// Halt settings
	Halt HaltConfig `yaml:"halt" json:"halt"`
}

// HaltConfig configures the remote halt flag.
type HaltConfig struct {
	// RedisAddr enables the flag when not empty.
	RedisAddr string `yaml:"redis_addr" json:"redis_addr"`
	// Key is the flag name under the "locus:" prefix.
	Key string `yaml:"key" json:"key"`
	// Interval is how often the flag is polled.
	Interval time.Duration `yaml:"interval" json:"interval"`
}

const (
	defaultLogLevel     = "warn"
	defaultHaltKey      = "halt"
	defaultHaltInterval = 200 * time.Millisecond
)

// Default returns the default configuration.
func Default() *Config {
	replace := true
	return &Config{
		LogLevel:          defaultLogLevel,
		Coverage:          string(induction.CoverageExact),
		ReplacePredicates: &replace,
		Halt: HaltConfig{
			Key:      defaultHaltKey,
			Interval: defaultHaltInterval,
		},
	}
}

// Load resolves defaults, the optional file at path and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := loadFromPath(path)
		if err != nil {
			return nil, err
		}
		cfg = merge(cfg, fileCfg)
	}

	cfg, err := applyEnv(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Replace reports the effective ReplacePredicates value.
func (c *Config) Replace() bool {
	return c.ReplacePredicates == nil || *c.ReplacePredicates
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := induction.ParseCoveragePolicy(c.Coverage); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Halt.Interval <= 0 {
		return fmt.Errorf("invalid config: halt interval must be positive, got %s", c.Halt.Interval)
	}
	return nil
}

func loadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) (*Config, error) {
	if v := os.Getenv("LOCUS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOCUS_COVERAGE"); v != "" {
		cfg.Coverage = v
	}
	if v := os.Getenv("LOCUS_REPLACE_PREDICATES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOCUS_REPLACE_PREDICATES %q: %w", v, err)
		}
		cfg.ReplacePredicates = &b
	}
	if v := os.Getenv("LOCUS_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("LOCUS_HALT_REDIS"); v != "" {
		cfg.Halt.RedisAddr = v
	}
	if v := os.Getenv("LOCUS_HALT_KEY"); v != "" {
		cfg.Halt.Key = v
	}
	if v := strings.TrimSpace(os.Getenv("LOCUS_HALT_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOCUS_HALT_INTERVAL %q: %w", v, err)
		}
		cfg.Halt.Interval = d
	}
	return cfg, nil
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.LogLevel, src.LogLevel)
	mergeStr(&dst.Coverage, src.Coverage)
	if src.ReplacePredicates != nil {
		v := *src.ReplacePredicates
		dst.ReplacePredicates = &v
	}
	mergeStr(&dst.MetricsAddr, src.MetricsAddr)
	mergeStr(&dst.Halt.RedisAddr, src.Halt.RedisAddr)
	mergeStr(&dst.Halt.Key, src.Halt.Key)
	if src.Halt.Interval != 0 {
		dst.Halt.Interval = src.Halt.Interval
	}
	return dst
}
