// Package config loads herdcarbon settings from ~/.herdcarbon/config.yaml,
// a .env file and HERDCARBON_* environment variables, and keeps the
// process-wide configuration and logger.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/engine/memo"
	"github.com/rshade/herdcarbon/internal/finance"
	"github.com/rshade/herdcarbon/internal/pathway"
	"github.com/rshade/herdcarbon/internal/report"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	configFileName = "config.yaml"
	configDirName  = ".herdcarbon"
	logFileName    = "herdcarbon.log"

	// localOverlayName is the per-directory overlay read from the working
	// directory.
	localOverlayName = ".herdcarbon.yaml"
)

// Config is the full herdcarbon configuration.
type Config struct {
	Logging  LoggingConfig       `yaml:"logging"`
	Engine   EngineConfig        `yaml:"engine"`
	Finance  FinanceConfig       `yaml:"finance"`
	Features engine.FeatureFlags `yaml:"features"`
	Output   OutputConfig        `yaml:"output"`

	// path is the file the config was loaded from, if any.
	path string
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"  validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
	File   string `yaml:"file,omitempty"`
}

// EngineConfig tunes the calculation engine.
type EngineConfig struct {
	MemoSize                 int     `yaml:"memo_size"                   validate:"gte=-1"`
	Concurrency              int     `yaml:"concurrency"                 validate:"gte=0,lte=256"`
	TheoreticalMinimumPerCow float64 `yaml:"theoretical_minimum_per_cow" validate:"gte=0"`
	TargetYear               int     `yaml:"target_year"                 validate:"gte=2000,lte=2100"`
	ProjectionYears          int     `yaml:"projection_years"            validate:"gte=1,lte=50"`
	FinancingRate            float64 `yaml:"financing_rate"              validate:"gte=0,lte=1"`
}

// FinanceConfig holds borrower details used by the financing package.
type FinanceConfig struct {
	CreditScore  int     `yaml:"credit_score"  validate:"gte=300,lte=850"`
	ExistingDebt float64 `yaml:"existing_debt" validate:"gte=0"`
}

// OutputConfig selects the default report format.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" validate:"oneof=text json csv markdown html"`
	Precision     int    `yaml:"precision"      validate:"gte=0,lte=10"`
}

// New returns a configuration populated with defaults.
func New() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Engine: EngineConfig{
			MemoSize:        memo.DefaultCapacity,
			TargetYear:      pathway.DefaultTargetYear,
			ProjectionYears: pathway.DefaultProjectionYears,
			FinancingRate:   pathway.DefaultFinancingRate,
		},
		Finance: FinanceConfig{
			CreditScore: finance.DefaultCreditScore,
		},
		Features: engine.DefaultFeatureFlags(),
		Output: OutputConfig{
			DefaultFormat: report.FormatText,
			Precision:     report.DefaultPrecision,
		},
	}
}

// Load builds a configuration from defaults, the YAML file at path, a
// .herdcarbon.yaml overlay and a .env file in the working directory, and
// HERDCARBON_* environment variables, in that order. An empty path means
// DefaultConfigPath; missing files are not an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.applyLocalOverlay(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	c.path = path
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// applyLocalOverlay merges .herdcarbon.yaml from the working directory, if
// present. Each section it names replaces the whole section.
func (c *Config) applyLocalOverlay() error {
	if _, err := os.Stat(localOverlayName); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking %s: %w", localOverlayName, err)
	}
	if err := ShallowMergeYAML(c, localOverlayName); err != nil {
		return err
	}
	log := GetLogger()
	log.Debug().Str("overlay", localOverlayName).Msg("applied working directory config overlay")
	return nil
}

// Path returns the file the configuration was read from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	c.path = path
	return nil
}

// ToEngineOptions converts the engine, finance and feature sections into
// calculator options.
func (c *Config) ToEngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	opts.Flags = c.Features
	opts.MemoSize = c.Engine.MemoSize
	opts.TheoreticalMinimumPerCow = c.Engine.TheoreticalMinimumPerCow
	opts.TargetYear = c.Engine.TargetYear
	opts.ProjectionYears = c.Engine.ProjectionYears
	opts.FinancingRate = c.Engine.FinancingRate
	opts.CreditScore = c.Finance.CreditScore
	opts.ExistingDebt = c.Finance.ExistingDebt
	return opts
}
