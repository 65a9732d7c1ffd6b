package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herdcarbon/internal/cli"
	"github.com/rshade/herdcarbon/internal/cli/pagination"
	"github.com/rshade/herdcarbon/internal/config"
	"github.com/rshade/herdcarbon/internal/finance"
	"github.com/rshade/herdcarbon/internal/report"
	"github.com/rshade/herdcarbon/internal/scenario"
)

// setupCLITest isolates the config directory and global state for one test.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HERDCARBON_HOME", home)
	t.Setenv("HERDCARBON_CONFIG", "")
	t.Setenv("HERDCARBON_LOG_LEVEL", "error")
	t.Setenv("HERDCARBON_LOG_FILE", "")
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// executeCmd runs the root command with args and returns stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCmd_MemoSizeValidation(t *testing.T) {
	setupCLITest(t)

	_, _, err := executeCmd(t, "validate", "--memo-size", "-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memo-size must be >= -1")
}

func TestRootCmd_InvalidConfigFile(t *testing.T) {
	setupCLITest(t)
	path := writeFile(t, "config.yaml", "output:\n  default_format: text\n  precision: 99\n")

	_, _, err := executeCmd(t, "calculate", "--config", path)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestCalculate(t *testing.T) {
	t.Run("json export", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "calculate", "--output", "json", "--farm-name", "Home Farm")
		require.NoError(t, err)

		var exp struct {
			SchemaVersion string      `json:"schemaVersion"`
			Meta          report.Meta `json:"meta"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &exp))
		assert.NotEmpty(t, exp.SchemaVersion)
		assert.Equal(t, "herdcarbon", exp.Meta.Generator)
		assert.Equal(t, "test", exp.Meta.Version)
		assert.Equal(t, "Home Farm", exp.Meta.FarmName)
	})

	t.Run("format from environment", func(t *testing.T) {
		setupCLITest(t)
		t.Setenv("HERDCARBON_OUTPUT_FORMAT", "markdown")

		out, _, err := executeCmd(t, "calculate")
		require.NoError(t, err)
		assert.Contains(t, out, "# ")
	})

	t.Run("params file", func(t *testing.T) {
		setupCLITest(t)
		params := writeFile(t, "farm.yaml", "herdSize: 80\nmilkYield: 7000\n")

		out, _, err := executeCmd(t, "calculate", "--params", params, "-o", "json")
		require.NoError(t, err)

		var exp struct {
			Parameters struct {
				HerdSize int `json:"herdSize"`
			} `json:"parameters"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &exp))
		assert.Equal(t, 80, exp.Parameters.HerdSize)
	})

	t.Run("non-finite params still export", func(t *testing.T) {
		setupCLITest(t)
		params := writeFile(t, "farm.yaml", "herdSize: -10\nmilkYield: .nan\nnitrogenRate: .inf\n")

		out, _, err := executeCmd(t, "calculate", "--params", params, "-o", "json")
		require.NoError(t, err)

		var exp struct {
			Parameters struct {
				HerdSize  int     `json:"herdSize"`
				MilkYield float64 `json:"milkYield"`
			} `json:"parameters"`
			Validation []string `json:"validation"`
			Summary    struct {
				FarmEmissions float64 `json:"farmEmissions"`
				Revenue       float64 `json:"revenue"`
			} `json:"summary"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &exp))
		assert.Zero(t, exp.Parameters.HerdSize)
		assert.Zero(t, exp.Parameters.MilkYield)
		assert.Zero(t, exp.Summary.FarmEmissions)
		assert.Zero(t, exp.Summary.Revenue)
		assert.Equal(t, []string{
			"Herd size must be between 1 and 10,000",
			"Milk yield must be between 1,000 and 20,000 L/cow/year",
			"Nitrogen rate must be between 0 and 300 kg N/Ha/Year",
		}, exp.Validation)
	})

	t.Run("unknown format", func(t *testing.T) {
		setupCLITest(t)

		_, _, err := executeCmd(t, "calculate", "--output", "pdf")
		require.ErrorIs(t, err, report.ErrUnknownFormat)
	})

	t.Run("unsupported params file", func(t *testing.T) {
		setupCLITest(t)
		params := writeFile(t, "farm.toml", "herdSize = 80\n")

		_, _, err := executeCmd(t, "calculate", "--params", params)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading parameters")
	})
}

func TestRisk(t *testing.T) {
	t.Run("missing required parameters", func(t *testing.T) {
		setupCLITest(t)

		_, stderr, err := executeCmd(t, "risk", "--loan-amount", "50000")
		require.Error(t, err)

		var exitErr *cli.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 1, exitErr.Code)
		assert.Contains(t, err.Error(), "herd-size and milk-yield are required")
		assert.Contains(t, stderr, "herd-size and milk-yield are required")
	})

	t.Run("report", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "risk",
			"--herd-size", "100", "--milk-yield", "8000", "--loan-amount", "50000", "--schedule")
		require.NoError(t, err)
		assert.Contains(t, out, "=== LOAN RISK ASSESSMENT ===")
		assert.Contains(t, out, "Herd Size: 100 cows")
		assert.Contains(t, out, "System Type: intensive")
		assert.Contains(t, out, "RISK ASSESSMENT:")
		assert.Contains(t, out, "RECOMMENDATIONS:")
		assert.Contains(t, out, "REPAYMENT SCHEDULE:")
		assert.NotContains(t, out, "JSON OUTPUT:")
	})

	t.Run("json file and json output", func(t *testing.T) {
		setupCLITest(t)
		params := writeFile(t, "farm.json", `{"herdSize": 150, "milkYield": 9000, "loanAmount": 100000}`)

		out, _, err := executeCmd(t, "risk", "--json", params, "--output-json")
		require.NoError(t, err)

		idx := bytes.Index([]byte(out), []byte("JSON OUTPUT:\n"))
		require.GreaterOrEqual(t, idx, 0)

		var rep cli.RiskReport
		require.NoError(t, json.Unmarshal([]byte(out[idx+len("JSON OUTPUT:\n"):]), &rep))
		assert.Equal(t, 150, rep.Parameters.HerdSize)
		assert.InDelta(t, 100000.0/150, rep.LoanPerCow, 1e-9)
		assert.Positive(t, rep.Intensity)
		assert.Positive(t, rep.MonthlyRepayment)
		assert.NotEmpty(t, rep.Recommendations)
	})

	t.Run("flags override the json file", func(t *testing.T) {
		setupCLITest(t)
		params := writeFile(t, "farm.json", `{"herdSize": 150, "milkYield": 9000}`)

		out, _, err := executeCmd(t, "risk", "--json", params, "--herd-size", "90")
		require.NoError(t, err)
		assert.Contains(t, out, "Herd Size: 90 cows")
	})

	t.Run("invalid system type", func(t *testing.T) {
		setupCLITest(t)

		_, _, err := executeCmd(t, "risk",
			"--herd-size", "100", "--milk-yield", "8000", "--system-type", "barn")
		require.Error(t, err)
	})
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name       string
		risk       finance.Risk
		intensity  float64
		loanPerCow float64
		wantFirst  string
		wantLen    int
	}{
		{"high from intensity and leverage", finance.RiskHigh, 1.6, 5000, "HIGH RISK - Immediate action recommended:", 5},
		{"high from intensity only", finance.RiskHigh, 1.6, 500, "HIGH RISK - Immediate action recommended:", 3},
		{"high from leverage only", finance.RiskHigh, 0.9, 5000, "HIGH RISK - Immediate action recommended:", 3},
		{"high at thresholds", finance.RiskHigh, 1.2, 1000, "HIGH RISK - Immediate action recommended:", 1},
		{"medium", finance.RiskMedium, 1.2, 500, "MODERATE RISK - Improvements recommended:", 4},
		{"low", finance.RiskLow, 0.8, 100, "LOW RISK - Well positioned:", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cli.Recommendations(tt.risk, tt.intensity, tt.loanPerCow)
			require.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got[0])
		})
	}

	got := cli.Recommendations(finance.RiskHigh, 1.6, 500)
	assert.Contains(t, got, "Consider methane inhibitors or improved genetics")
	assert.NotContains(t, got, "High debt load - consider restructuring")
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "validate")
		require.NoError(t, err)
		assert.Contains(t, out, "Parameters are valid")
	})

	t.Run("out of range values", func(t *testing.T) {
		setupCLITest(t)
		params := writeFile(t, "farm.json", `{"milkYield": 500, "feedQuality": 11}`)

		_, stderr, err := executeCmd(t, "validate", "--params", params)
		require.Error(t, err)

		var exitErr *cli.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Reason, "2 parameter value(s) out of range")
		assert.Contains(t, stderr, "Parameter validation failed:")
		assert.Contains(t, stderr, "Milk yield must be between 1,000 and 20,000 L/cow/year")
		assert.Contains(t, stderr, "Feed quality must be between 1 and 10")
	})

	t.Run("unknown parameter key", func(t *testing.T) {
		setupCLITest(t)
		params := writeFile(t, "farm.json", `{"cowCount": 5}`)

		_, _, err := executeCmd(t, "validate", "--params", params)
		require.Error(t, err)
	})
}

func TestScenario(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "scenario", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "ID")
		for _, pr := range scenario.Practices() {
			assert.Contains(t, out, pr.ID)
		}
	})

	t.Run("compare", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "scenario", "compare",
			"--practice", scenario.PracticeMethaneInhibitor, "-p", scenario.PracticeSolarPanels)
		require.NoError(t, err)
		assert.Contains(t, out, "SCENARIO COMPARISON")
		assert.Contains(t, out, "METRIC")
		assert.Contains(t, out, "SCENARIO FINANCING")
	})

	t.Run("compare as json without scenario financing", func(t *testing.T) {
		setupCLITest(t)
		t.Setenv("HERDCARBON_DISABLE_FEATURES", "SCENARIO_FINANCING")

		out, _, err := executeCmd(t, "scenario", "compare",
			"--practice", scenario.PracticeExtendGrazing+","+scenario.PracticeReduceNitrogen, "--json")
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t,
			[]any{scenario.PracticeExtendGrazing, scenario.PracticeReduceNitrogen}, got["practices"])
		assert.NotEmpty(t, got["comparison"])
		assert.NotContains(t, got, "financing")
	})

	t.Run("unknown practice", func(t *testing.T) {
		setupCLITest(t)

		_, _, err := executeCmd(t, "scenario", "compare", "--practice", "robot-milking")
		require.ErrorIs(t, err, scenario.ErrUnknownPractice)
	})

	t.Run("no practice", func(t *testing.T) {
		setupCLITest(t)

		_, _, err := executeCmd(t, "scenario", "compare")
		require.ErrorIs(t, err, cli.ErrNoPractices)
	})
}

func TestPathway(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "pathway", "--target-year", "2040")
		require.NoError(t, err)
		assert.Contains(t, out, "THEORETICAL MINIMUM")
		assert.Contains(t, out, "REDUCTION PATHWAY (target 2040")
		assert.Contains(t, out, "IMPLEMENTATION TIMELINE")
	})

	t.Run("sorted and paged json", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "pathway", "--json", "--sort", "cost:asc", "--limit", "2")
		require.NoError(t, err)

		var got struct {
			Measures []struct {
				Cost float64 `json:"cost"`
			} `json:"measures"`
			Page pagination.Meta `json:"page"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.LessOrEqual(t, len(got.Measures), 2)
		assert.Equal(t, len(got.Measures), got.Page.Shown)
		assert.GreaterOrEqual(t, got.Page.TotalItems, got.Page.Shown)
		for i := 1; i < len(got.Measures); i++ {
			assert.LessOrEqual(t, got.Measures[i-1].Cost, got.Measures[i].Cost)
		}
	})

	t.Run("invalid sort field", func(t *testing.T) {
		setupCLITest(t)

		_, _, err := executeCmd(t, "pathway", "--sort", "colour")
		require.ErrorIs(t, err, pagination.ErrInvalidSortField)
	})

	t.Run("invalid limit", func(t *testing.T) {
		setupCLITest(t)

		_, _, err := executeCmd(t, "pathway", "--limit", "-1")
		require.ErrorIs(t, err, pagination.ErrInvalidLimit)
	})

	t.Run("feature disabled", func(t *testing.T) {
		setupCLITest(t)
		t.Setenv("HERDCARBON_DISABLE_FEATURES", "REDUCTION_PATHWAYS")

		_, _, err := executeCmd(t, "pathway")
		require.ErrorIs(t, err, cli.ErrFeatureDisabled)
	})
}

func TestFinancing(t *testing.T) {
	t.Run("package", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "financing", "--credit-score", "620", "--existing-debt", "250000")
		require.NoError(t, err)
		assert.Contains(t, out, "GREEN FINANCING PACKAGE (credit score 620")
	})

	t.Run("json", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "financing", "--json")
		require.NoError(t, err)

		var pkg finance.Package
		require.NoError(t, json.Unmarshal([]byte(out), &pkg))
		assert.Equal(t, finance.DefaultCreditScore, pkg.CreditScore)
	})

	t.Run("credit score out of range", func(t *testing.T) {
		setupCLITest(t)

		_, _, err := executeCmd(t, "financing", "--credit-score", "900")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "credit-score must be between 300 and 850")
	})

	t.Run("negative debt", func(t *testing.T) {
		setupCLITest(t)

		_, _, err := executeCmd(t, "financing", "--existing-debt", "-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "existing-debt must be >= 0")
	})

	t.Run("feature disabled", func(t *testing.T) {
		setupCLITest(t)
		t.Setenv("HERDCARBON_DISABLE_FEATURES", "GREEN_FINANCING")

		_, _, err := executeCmd(t, "financing")
		require.ErrorIs(t, err, cli.ErrFeatureDisabled)
	})
}

func TestGlidePath(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "glidepath", "--years", "5")
		require.NoError(t, err)
		assert.Contains(t, out, "NET EMISSIONS GLIDE PATH")
		assert.Contains(t, out, "Net zero by")
		assert.Contains(t, out, "Theoretical minimum by")
	})

	t.Run("json", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "glidepath", "--years", "3", "--json")
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.NotEmpty(t, got)
	})

	for _, years := range []string{"0", "51"} {
		t.Run("years "+years, func(t *testing.T) {
			setupCLITest(t)

			_, _, err := executeCmd(t, "glidepath", "--years", years)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "years must be between 1 and 50")
		})
	}
}

func TestExplore_NotInteractive(t *testing.T) {
	setupCLITest(t)

	_, _, err := executeCmd(t, "explore")
	require.ErrorIs(t, err, cli.ErrNotInteractive)
}

func TestConfigCommands(t *testing.T) {
	t.Run("init creates the file", func(t *testing.T) {
		home := setupCLITest(t)

		out, _, err := executeCmd(t, "config", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration initialized successfully")
		assert.FileExists(t, filepath.Join(home, "config.yaml"))

		_, _, err = executeCmd(t, "config", "init")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		_, _, err = executeCmd(t, "config", "init", "--force")
		require.NoError(t, err)
	})

	t.Run("init at explicit path", func(t *testing.T) {
		setupCLITest(t)
		path := filepath.Join(t.TempDir(), "nested", "herdcarbon.yaml")

		out, _, err := executeCmd(t, "config", "init", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, path)
		assert.FileExists(t, path)
	})

	t.Run("show defaults", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "# defaults (no configuration file)")
		assert.Contains(t, out, "default_format: text")
	})

	t.Run("show applies environment", func(t *testing.T) {
		setupCLITest(t)
		t.Setenv("HERDCARBON_CREDIT_SCORE", "700")

		out, _, err := executeCmd(t, "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "credit_score: 700")
	})

	t.Run("validate valid file", func(t *testing.T) {
		home := setupCLITest(t)
		require.NoError(t, config.New().Save(filepath.Join(home, "config.yaml")))

		out, _, err := executeCmd(t, "config", "validate", "--verbose")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration is valid")
		assert.Contains(t, out, "Enabled features:")
	})

	t.Run("validate invalid file", func(t *testing.T) {
		setupCLITest(t)
		path := writeFile(t, "config.yaml", "engine:\n  projection_years: 0\n")

		_, stderr, err := executeCmd(t, "config", "validate", "--config", path)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, stderr, "using defaults")
	})
}
