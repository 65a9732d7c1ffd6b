package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "HERDCARBON"

// envOverrides mirrors the settable configuration. Nil pointers mean the
// variable was not set.
type envOverrides struct {
	LogLevel  *string `envconfig:"LOG_LEVEL"`
	LogFormat *string `envconfig:"LOG_FORMAT"`
	LogFile   *string `envconfig:"LOG_FILE"`

	MemoSize                 *int     `envconfig:"MEMO_SIZE"`
	Concurrency              *int     `envconfig:"CONCURRENCY"`
	TheoreticalMinimumPerCow *float64 `envconfig:"THEORETICAL_MINIMUM_PER_COW"`
	TargetYear               *int     `envconfig:"TARGET_YEAR"`
	ProjectionYears          *int     `envconfig:"PROJECTION_YEARS"`
	FinancingRate            *float64 `envconfig:"FINANCING_RATE"`

	CreditScore  *int     `envconfig:"CREDIT_SCORE"`
	ExistingDebt *float64 `envconfig:"EXISTING_DEBT"`

	OutputFormat *string `envconfig:"OUTPUT_FORMAT"`
	Precision    *int    `envconfig:"PRECISION"`

	EnableFeatures  []string `envconfig:"ENABLE_FEATURES"`
	DisableFeatures []string `envconfig:"DISABLE_FEATURES"`
}

// ApplyEnv overlays a .env file from the working directory, if present, and
// then HERDCARBON_* variables. Variables already in the environment win over
// .env entries.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("processing %s_* environment: %w", EnvPrefix, err)
	}
	return c.applyOverrides(env)
}

func (c *Config) applyOverrides(env envOverrides) error {
	setString(&c.Logging.Level, env.LogLevel)
	setString(&c.Logging.Format, env.LogFormat)
	setString(&c.Logging.File, env.LogFile)

	setValue(&c.Engine.MemoSize, env.MemoSize)
	setValue(&c.Engine.Concurrency, env.Concurrency)
	setValue(&c.Engine.TheoreticalMinimumPerCow, env.TheoreticalMinimumPerCow)
	setValue(&c.Engine.TargetYear, env.TargetYear)
	setValue(&c.Engine.ProjectionYears, env.ProjectionYears)
	setValue(&c.Engine.FinancingRate, env.FinancingRate)

	setValue(&c.Finance.CreditScore, env.CreditScore)
	setValue(&c.Finance.ExistingDebt, env.ExistingDebt)

	setString(&c.Output.DefaultFormat, env.OutputFormat)
	setValue(&c.Output.Precision, env.Precision)

	for _, name := range env.EnableFeatures {
		flags, err := c.Features.With(strings.TrimSpace(name), true)
		if err != nil {
			return fmt.Errorf("%s_ENABLE_FEATURES: %w", EnvPrefix, err)
		}
		c.Features = flags
	}
	for _, name := range env.DisableFeatures {
		flags, err := c.Features.With(strings.TrimSpace(name), false)
		if err != nil {
			return fmt.Errorf("%s_DISABLE_FEATURES: %w", EnvPrefix, err)
		}
		c.Features = flags
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setValue[T int | float64](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
