package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/herdcarbon/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file, .env and environment overrides.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Example: `  # Show the configuration in effect
  herdcarbon config show

  # Show it with an environment override applied
  HERDCARBON_OUTPUT_FORMAT=json herdcarbon config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if p := cfg.Path(); p != "" {
				cmd.Printf("# %s\n", p)
			} else {
				cmd.Println("# defaults (no configuration file)")
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			cmd.Print(string(data))
			return nil
		},
	}
}

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at ~/.herdcarbon/config.yaml (or --config)
for syntax and semantic correctness, including environment overrides.`,
		Example: `  # Validate current configuration
  herdcarbon config validate

  # Validate and show detailed information
  herdcarbon config validate --verbose`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path, err := configPath(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if cfg.Path() != "" {
		cmd.Printf("  Config file: %s\n", cfg.Path())
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Memo size: %d\n", cfg.Engine.MemoSize)
	cmd.Printf("  Concurrency: %d\n", cfg.Engine.Concurrency)
	cmd.Printf("  Target year: %d\n", cfg.Engine.TargetYear)

	printFeatureDetails(cmd, cfg)
}

// printFeatureDetails prints the enabled and disabled feature flags.
func printFeatureDetails(cmd *cobra.Command, cfg *config.Config) {
	var on, off []string
	for _, name := range cfg.Features.Names() {
		if cfg.Features.Enabled(name) {
			on = append(on, name)
		} else {
			off = append(off, name)
		}
	}
	cmd.Printf("  Enabled features: %s\n", strings.Join(on, ", "))
	if len(off) > 0 {
		cmd.Printf("  Disabled features: %s\n", strings.Join(off, ", "))
	}
}
