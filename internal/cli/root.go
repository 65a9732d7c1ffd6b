package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/herdcarbon/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// annotationConfigOptional marks commands that still run when the
// configuration file cannot be loaded.
const annotationConfigOptional = "herdcarbon/config-optional"

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the herdcarbon CLI.
// It wires up configuration, logging, tracing and every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with an explicit env lookup for
// testability.
func NewRootCmdWithArgs(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var session *logSession

	cmd := &cobra.Command{
		Use:           "herdcarbon",
		Short:         "Dairy farm emissions, economics and green finance calculator",
		Long:          "herdcarbon: Calculate dairy herd GHG emissions, costs, reduction pathways and loan risk",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			memoSize, _ := cmd.Flags().GetInt("memo-size")
			if memoSize < -1 {
				return fmt.Errorf("memo-size must be >= -1, got %d", memoSize)
			}

			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				if home, ok := lookupEnv(config.EnvPrefix + "_CONFIG"); ok {
					path = home
				}
			}
			cfg, err := config.Load(path)
			if err != nil {
				if cmd.Annotations[annotationConfigOptional] != "true" {
					return err
				}
				cmd.PrintErrf("Warning: %v; using defaults\n", err)
				cfg = config.New()
			}
			if cmd.Flags().Changed("memo-size") {
				cfg.Engine.MemoSize = memoSize
			}
			config.SetGlobalConfig(cfg)

			session = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, session)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "configuration file (default ~/.herdcarbon/config.yaml)")
	cmd.PersistentFlags().String("params", "", "farm parameter file (JSON or YAML) overlaid on the defaults")
	cmd.PersistentFlags().
		Int("memo-size", 0, "memoized result capacity (-1 disables, overrides config file and env var)")

	cmd.AddCommand(
		NewCalculateCmd(), NewRiskCmd(), NewPathwayCmd(), NewFinancingCmd(),
		NewGlidePathCmd(), newScenarioCmd(), NewValidateCmd(), NewExploreCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Full report for the default farm
  herdcarbon calculate

  # Report for a farm described in a file, as Markdown
  herdcarbon calculate --params farm.yaml --output markdown

  # Loan risk for a 120-cow herd
  herdcarbon risk --herd-size 120 --milk-yield 8200 --loan-amount 400000

  # Compare the farm with two practices applied
  herdcarbon scenario compare --practice methane-inhibitor --practice solar-panels

  # Edit parameters interactively
  herdcarbon explore

  # Initialize configuration
  herdcarbon config init`

// newScenarioCmd creates the scenario command group.
func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "scenario", Short: "What-if scenario commands"}
	cmd.AddCommand(NewScenarioCompareCmd(), NewScenarioListCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
