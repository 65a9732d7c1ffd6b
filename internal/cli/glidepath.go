package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/pathway"
	"github.com/rshade/herdcarbon/internal/report"
)

// maxProjectionYears bounds --years.
const maxProjectionYears = 50

// NewGlidePathCmd creates the glidepath command, which projects gross,
// sequestered and net emissions year by year.
func NewGlidePathCmd() *cobra.Command {
	var (
		years  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "glidepath",
		Short: "Project net emissions over the coming years",
		Example: `  # Ten-year projection for the default farm
  herdcarbon glidepath

  # Twenty-year projection as JSON
  herdcarbon glidepath --years 20 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if years < 1 || years > maxProjectionYears {
				return fmt.Errorf("years must be between 1 and %d, got %d", maxProjectionYears, years)
			}

			params, err := loadParameters(cmd, farm.DefaultParameters())
			if err != nil {
				return err
			}

			calc := newCalculator(func(o *engine.Options) {
				if cmd.Flags().Changed("years") {
					o.ProjectionYears = years
				}
			})
			res, err := evaluate(cmd, calc, params)
			if err != nil {
				return err
			}
			if res.GlidePath == nil {
				return fmt.Errorf("%w: %s", ErrFeatureDisabled, engine.FlagReductionPathways)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.GlidePath)
			}
			renderGlidePath(cmd.OutOrStdout(), *res.GlidePath)
			return nil
		},
	}

	cmd.Flags().IntVar(&years, "years", pathway.DefaultProjectionYears, "number of years to project")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the projection as JSON")

	return cmd
}

func renderGlidePath(w io.Writer, gp pathway.GlidePath) {
	fmt.Fprintf(w, "NET EMISSIONS GLIDE PATH (%d-%d, t CO2e/year)\n", gp.CurrentYear, gp.TargetYear)

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "YEAR\tGROSS\tSEQUESTRATION\tNET\tMINIMUM\tKG CO2E/L\tABOVE MIN\t")
	for _, y := range gp.Years {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			y.Year,
			report.FormatNumber(y.Gross, 1),
			report.FormatNumber(y.Sequestration, 1),
			report.FormatNumber(y.Net, 1),
			report.FormatNumber(y.TheoreticalMinimum, 1),
			report.FormatNumber(y.Intensity, 3),
			report.FormatPercent(y.PercentAboveTM))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Net zero by %d: %s\n", gp.TargetYear, yesNo(gp.CanReachNetZero))
	fmt.Fprintf(w, "Theoretical minimum by %d: %s\n", gp.TargetYear, yesNo(gp.CanReachTM))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
