package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/herdcarbon/internal/config"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/report"
	"github.com/rshade/herdcarbon/internal/scenario"
)

// ErrNoPractices is returned when scenario compare is given no practices.
var ErrNoPractices = errors.New("at least one --practice is required")

// scenarioOutput is the JSON form of scenario compare.
type scenarioOutput struct {
	Practices  []string                 `json:"practices"`
	Baseline   farm.Parameters          `json:"baseline"`
	Scenario   farm.Parameters          `json:"scenario"`
	Comparison []scenario.ComparisonRow `json:"comparison"`
	Summary    string                   `json:"summary"`
	Financing  *scenario.Financing      `json:"financing,omitempty"`
}

// NewScenarioCompareCmd creates the scenario compare command.
func NewScenarioCompareCmd() *cobra.Command {
	var (
		practices []string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the farm with a set of practices applied",
		Long: `Applies the given practices to the farm parameters, evaluates the baseline and
the scenario side by side and prints the change in every headline metric. When
scenario financing is enabled, the up-front cost of the adopted practices and
its carbon payback are shown too.`,
		Example: `  # Methane inhibitor and extra solar
  herdcarbon scenario compare --practice methane-inhibitor --practice solar-panels

  # Several practices at once, as JSON
  herdcarbon scenario compare --practice extend-grazing,reduce-nitrogen --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScenarioCompare(cmd, practices, asJSON)
		},
	}

	cmd.Flags().StringSliceVarP(&practices, "practice", "p", nil,
		"practice to apply (repeatable; see 'herdcarbon scenario list')")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")

	return cmd
}

func runScenarioCompare(cmd *cobra.Command, practices []string, asJSON bool) error {
	if len(practices) == 0 {
		return ErrNoPractices
	}

	baseline, err := loadParameters(cmd, farm.DefaultParameters())
	if err != nil {
		return err
	}
	modified, err := scenario.Build(baseline, practices...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	run := newRunContext(cmd.CommandPath())
	calc := newCalculator(nil)

	results, err := calc.EvaluateBatch(ctx, []farm.Parameters{baseline, modified},
		config.GetGlobalConfig().Engine.Concurrency)
	if err != nil {
		run.logFailure(ctx, err)
		return fmt.Errorf("evaluating scenario: %w", err)
	}
	run.logSuccess(ctx, len(results))

	base, scen := results[0], results[1]
	rows := scenario.Compare(base, scen)
	out := scenarioOutput{
		Practices:  practices,
		Baseline:   base.Parameters,
		Scenario:   scen.Parameters,
		Comparison: rows,
		Summary:    scenario.Summary(rows),
	}
	if calc.Flags().ScenarioFinancing {
		fin := scenario.Finance(base, scen)
		out.Financing = &fin
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	renderScenario(cmd.OutOrStdout(), out)
	return nil
}

func renderScenario(w io.Writer, out scenarioOutput) {
	fmt.Fprintln(w, "SCENARIO COMPARISON")
	for _, id := range out.Practices {
		if pr, err := scenario.Lookup(id); err == nil {
			fmt.Fprintf(w, "  + %s: %s\n", pr.Name, pr.Impact)
		}
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tBASELINE\tSCENARIO\tCHANGE\tUNIT")
	for _, r := range out.Comparison {
		change := report.FormatNumber(r.Delta, report.DefaultPrecision)
		if r.Delta > 0 {
			change = "+" + change
		}
		if r.Baseline != 0 {
			change += fmt.Sprintf(" (%+.1f%%)", r.PercentChange)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Label,
			report.FormatNumber(r.Baseline, report.DefaultPrecision),
			report.FormatNumber(r.Scenario, report.DefaultPrecision),
			change, r.Unit)
	}
	_ = tw.Flush()

	if out.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", out.Summary)
	}

	if fin := out.Financing; fin != nil {
		fmt.Fprintln(w, "\nSCENARIO FINANCING")
		for _, pc := range fin.Practices {
			fmt.Fprintf(w, "  %s: %s\n", pc.Name, report.FormatCurrency(pc.Cost))
		}
		fmt.Fprintf(w, "  Total investment:    %s\n", report.FormatCurrency(fin.TotalInvestment))
		fmt.Fprintf(w, "  Emissions reduction: %s kg CO2e/year (%s)\n",
			report.FormatNumber(fin.EmissionsReduction, 0), report.FormatPercent(fin.ReductionPercent))
		fmt.Fprintf(w, "  Annual carbon value: %s\n", report.FormatCurrency(fin.AnnualCarbonValue))
		if fin.SimplePayback > 0 {
			fmt.Fprintf(w, "  Simple payback:      %s years\n", report.FormatNumber(fin.SimplePayback, 1))
		} else {
			fmt.Fprintln(w, "  Simple payback:      n/a")
		}
	}
}

// NewScenarioListCmd creates the scenario list command.
func NewScenarioListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the practices available to scenario compare",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabwriterPadding, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tIMPACT")
			for _, pr := range scenario.Practices() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", pr.ID, pr.Name, pr.Impact)
			}
			return tw.Flush()
		},
	}
}
