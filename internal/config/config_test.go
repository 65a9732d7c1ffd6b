package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herdcarbon/internal/config"
	"github.com/rshade/herdcarbon/internal/engine"
)

func TestNewDefaults(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 256, cfg.Engine.MemoSize)
	assert.Equal(t, 2035, cfg.Engine.TargetYear)
	assert.Equal(t, 10, cfg.Engine.ProjectionYears)
	assert.Equal(t, 700, cfg.Finance.CreditScore)
	assert.Equal(t, engine.DefaultFeatureFlags(), cfg.Features)
	assert.Equal(t, "text", cfg.Output.DefaultFormat)
	assert.Equal(t, 2, cfg.Output.Precision)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.New().Engine, cfg.Engine)
	assert.Empty(t, cfg.Path())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
engine:
  memo_size: 16
  concurrency: 4
  theoretical_minimum_per_cow: 1700
  target_year: 2040
  projection_years: 15
  financing_rate: 0.05
features:
  green_financing: false
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 16, cfg.Engine.MemoSize)
	assert.Equal(t, 4, cfg.Engine.Concurrency)
	assert.Equal(t, 2040, cfg.Engine.TargetYear)
	// Keys not in the file keep their defaults.
	assert.Equal(t, 700, cfg.Finance.CreditScore)
	assert.True(t, cfg.Features.RiskScoring)
	assert.False(t, cfg.Features.GreenFinancing)

	opts := cfg.ToEngineOptions()
	assert.Equal(t, 16, opts.MemoSize)
	assert.InDelta(t, 1700.0, opts.TheoreticalMinimumPerCow, 0)
	assert.Equal(t, 2040, opts.TargetYear)
	assert.Equal(t, 15, opts.ProjectionYears)
	assert.InDelta(t, 0.05, opts.FinancingRate, 0)
	assert.Equal(t, 700, opts.CreditScore)
	assert.False(t, opts.Flags.GreenFinancing)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{name: "unknown key", content: "plugins:\n  x: 1\n"},
		{name: "bad yaml", content: "engine: [1"},
		{name: "bad level", content: "logging:\n  level: loud\n  format: console\n", invalid: true},
		{name: "bad format", content: "output:\n  default_format: pdf\n  precision: 2\n", invalid: true},
		{name: "credit score", content: "finance:\n  credit_score: 100\n", invalid: true},
		{name: "target year", content: "engine:\n  target_year: 1990\n", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			_, err := config.Load(path)
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HERDCARBON_LOG_LEVEL", "warn")
	t.Setenv("HERDCARBON_MEMO_SIZE", "-1")
	t.Setenv("HERDCARBON_CREDIT_SCORE", "780")
	t.Setenv("HERDCARBON_EXISTING_DEBT", "12500.5")
	t.Setenv("HERDCARBON_OUTPUT_FORMAT", "csv")
	t.Setenv("HERDCARBON_ENABLE_FEATURES", "ml_predictions, PEER_BENCHMARKING")
	t.Setenv("HERDCARBON_DISABLE_FEATURES", "RISK_SCORING")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, -1, cfg.Engine.MemoSize)
	assert.Equal(t, 780, cfg.Finance.CreditScore)
	assert.InDelta(t, 12500.5, cfg.Finance.ExistingDebt, 0)
	assert.Equal(t, "csv", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Features.MLPredictions)
	assert.True(t, cfg.Features.PeerBenchmarking)
	assert.False(t, cfg.Features.RiskScoring)
}

func TestLoadEnvErrors(t *testing.T) {
	t.Run("unparsable", func(t *testing.T) {
		t.Setenv("HERDCARBON_MEMO_SIZE", "many")
		_, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
		assert.Error(t, err)
	})
	t.Run("unknown flag", func(t *testing.T) {
		t.Setenv("HERDCARBON_ENABLE_FEATURES", "TELEPORT")
		_, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
		assert.ErrorIs(t, err, engine.ErrUnknownFlag)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Engine.Concurrency = 8
	cfg.Features.MLPredictions = true
	require.NoError(t, cfg.Save(path))
	assert.Equal(t, path, cfg.Path())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	back, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Engine, back.Engine)
	assert.Equal(t, cfg.Features, back.Features)
	assert.Equal(t, cfg.Output, back.Output)
}

func TestLoadWorkingDirectoryOverlay(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("finance:\n  credit_score: 640\n  existing_debt: 1000\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".herdcarbon.yaml"),
		[]byte("finance:\n  credit_score: 790\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 790, cfg.Finance.CreditScore)
	// The overlay replaces the whole section.
	assert.Zero(t, cfg.Finance.ExistingDebt)
	assert.Equal(t, path, cfg.Path())

	t.Setenv("HERDCARBON_CREDIT_SCORE", "810")
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 810, cfg.Finance.CreditScore, "environment wins over the overlay")
}

func TestLoadInvalidOverlay(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".herdcarbon.yaml"),
		[]byte("output:\n  default_format: pdf\n"), 0o600))

	_, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
