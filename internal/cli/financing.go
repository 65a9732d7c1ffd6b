package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/finance"
	"github.com/rshade/herdcarbon/internal/report"
)

// NewFinancingCmd creates the financing command, which matches each pathway
// measure to a green financing product and values the package.
func NewFinancingCmd() *cobra.Command {
	var (
		creditScore  int
		existingDebt float64
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "financing",
		Short: "Build a green financing package for the reduction pathway",
		Example: `  # Package with the configured credit profile
  herdcarbon financing

  # Package for a farm with a weaker credit score and existing debt
  herdcarbon financing --credit-score 620 --existing-debt 250000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if creditScore != 0 && (creditScore < 300 || creditScore > 850) {
				return fmt.Errorf("credit-score must be between 300 and 850, got %d", creditScore)
			}
			if existingDebt < 0 {
				return fmt.Errorf("existing-debt must be >= 0, got %g", existingDebt)
			}

			params, err := loadParameters(cmd, farm.DefaultParameters())
			if err != nil {
				return err
			}

			calc := newCalculator(func(o *engine.Options) {
				if cmd.Flags().Changed("credit-score") {
					o.CreditScore = creditScore
				}
				if cmd.Flags().Changed("existing-debt") {
					o.ExistingDebt = existingDebt
				}
			})
			res, err := evaluate(cmd, calc, params)
			if err != nil {
				return err
			}
			if res.Financing == nil {
				return fmt.Errorf("%w: %s", ErrFeatureDisabled, engine.FlagGreenFinancing)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.Financing)
			}
			renderFinancing(cmd.OutOrStdout(), *res.Financing)
			return nil
		},
	}

	cmd.Flags().IntVar(&creditScore, "credit-score", 0, "credit score, 300-850 (default from config)")
	cmd.Flags().Float64Var(&existingDebt, "existing-debt", 0, "existing debt in £ (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the package as JSON")

	return cmd
}

func renderFinancing(w io.Writer, pkg finance.Package) {
	fmt.Fprintf(w, "GREEN FINANCING PACKAGE (credit score %d, existing debt %s)\n",
		pkg.CreditScore, report.FormatCurrency(pkg.ExistingDebt))
	if len(pkg.Items) == 0 {
		fmt.Fprintln(w, "  No measures to finance.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "MEASURE\tPRODUCT\tTYPE\tAMOUNT\tRATE\tMONTHLY\tKG CO2E/YEAR")
	for _, it := range pkg.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.MeasureName, it.Option.Name, it.Option.Type,
			report.FormatCurrency(it.Amount),
			report.FormatRate(it.EffectiveRate),
			report.FormatCurrency(it.MonthlyPayment),
			report.FormatNumber(it.CarbonBenefit, 0))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total investment:     %s\n", report.FormatCurrency(pkg.TotalInvestment))
	fmt.Fprintf(w, "Total financed:       %s\n", report.FormatCurrency(pkg.TotalFinanced))
	fmt.Fprintf(w, "Weighted rate:        %s\n", report.FormatRate(pkg.WeightedRate))
	fmt.Fprintf(w, "Monthly payment:      %s\n", report.FormatCurrency(pkg.MonthlyPayment))
	fmt.Fprintf(w, "Financing cost:       %s\n", report.FormatCurrency(pkg.TotalFinancingCost))
	fmt.Fprintf(w, "Annual carbon value:  %s\n", report.FormatCurrency(pkg.AnnualCarbonValue))
	fmt.Fprintf(w, "Payback:              %s months\n", report.FormatNumber(pkg.PaybackMonths, 1))
	fmt.Fprintf(w, "NPV (%s, %d years): %s\n",
		report.FormatRate(finance.PackageDiscountRate), finance.PackageHorizonYears, report.FormatCurrency(pkg.NPV))
	fmt.Fprintf(w, "IRR:                  %s\n", report.FormatRate(pkg.IRR))
	fmt.Fprintf(w, "Cost effectiveness:   %s £/t CO2e\n", report.FormatNumber(pkg.CarbonCostEffectiveness, 2))

	if el := pkg.Eligibility; el != nil {
		fmt.Fprintln(w, "\nELIGIBILITY")
		fmt.Fprintf(w, "  Available capacity: %s/year\n", report.FormatCurrency(el.AvailableCapacity))
		fmt.Fprintf(w, "  Debt service ratio: %s\n", report.FormatPercent(el.DebtServiceRatio*100))
		fmt.Fprintf(w, "  Green rate bonus:   %s\n", report.FormatRate(el.GreenBonus))
		fmt.Fprintf(w, "  Maximum loan:       %s\n", report.FormatCurrency(el.MaxLoan))
		for _, o := range el.EligibleOptions {
			fmt.Fprintf(w, "  - %s (%s, up to %s)\n", o.Name, o.Type, report.FormatCurrency(o.MaxAmount))
		}
	}
}
