package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/rshade/herdcarbon/internal/farm"
)

// validationExitCode is the exit code when parameters fail validation.
const validationExitCode = 2

// NewValidateCmd creates the validate command, which checks farm parameters
// against their allowed ranges without printing results.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check farm parameters against their allowed ranges",
		Long: `Validates the farm parameters (the defaults overlaid with --params) and lists
every value outside its allowed range. Exits with code 2 when any value is out
of range.`,
		Example: `  # Validate a farm file
  herdcarbon validate --params farm.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := loadParameters(cmd, farm.DefaultParameters())
			if err != nil {
				return err
			}

			issues := slices.Concat(params.Validate(), params.ValidateSequestration())
			logger.Debug().Ctx(cmd.Context()).Int("issues", len(issues)).Msg("parameters validated")

			if len(issues) == 0 {
				cmd.Println("Parameters are valid")
				return nil
			}

			cmd.PrintErrln("Parameter validation failed:")
			for _, issue := range issues {
				cmd.PrintErrf("  - %s\n", issue)
			}
			return &ExitError{
				Code:   validationExitCode,
				Reason: fmt.Sprintf("%d parameter value(s) out of range", len(issues)),
			}
		},
	}
}
