package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/herdcarbon/internal/emissions"
	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/factors"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/finance"
	"github.com/rshade/herdcarbon/internal/report"
	"github.com/rshade/herdcarbon/internal/safemath"
)

// tabwriterPadding is the column padding for tabular CLI output.
const tabwriterPadding = 2

// Thresholds that trigger the specific high-risk recommendations.
const (
	highIntensityAbove  = 1.2
	highLoanPerCowAbove = 1000.0
)

// missingRequiredReason is reported when herd size or milk yield is not given.
const missingRequiredReason = "herd-size and milk-yield are required parameters"

// riskFlags holds the risk command flag values.
type riskFlags struct {
	herdSize        int
	milkYield       float64
	loanAmount      float64
	loanTerm        int
	systemType      string
	feedQuality     float64
	concentrateFeed float64
	nitrogenRate    float64
	crudeProtein    float64
	jsonFile        string
	outputJSON      bool
	schedule        bool
}

// NewRiskCmd creates the risk command, which grades a farm loan from its
// emissions intensity and size.
func NewRiskCmd() *cobra.Command {
	var f riskFlags

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Assess loan risk from emissions intensity and loan size",
		Long: `Calculates per-cow emissions and intensity for a confined herd, grades the
loan risk, prices the loan and prints recommendations.

Herd size and milk yield are required, either as flags or in the --json file.`,
		Example: `  # Basic calculation
  herdcarbon risk --herd-size 100 --milk-yield 8000 --loan-amount 50000

  # Using a JSON file
  herdcarbon risk --json farm-params.json

  # Detailed parameters with repayment schedule
  herdcarbon risk --herd-size 150 --milk-yield 9000 --loan-amount 100000 \
    --system-type hybrid --feed-quality 8 --nitrogen-rate 150 --schedule`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRisk(cmd, f)
		},
	}

	cmd.Flags().IntVar(&f.herdSize, "herd-size", 0, "number of cows in the herd (required)")
	cmd.Flags().Float64Var(&f.milkYield, "milk-yield", 0, "annual milk yield per cow, L/cow/year (required)")
	cmd.Flags().Float64Var(&f.loanAmount, "loan-amount", 0, "loan amount in £")
	cmd.Flags().IntVar(&f.loanTerm, "loan-term", farm.DefaultLoanTerm, "loan term in years")
	cmd.Flags().StringVar(&f.systemType, "system-type", string(farm.HousingConfined), "pasture, confined or hybrid")
	cmd.Flags().Float64Var(&f.feedQuality, "feed-quality", farm.DefaultFeedQuality, "feed quality score (1-10)")
	cmd.Flags().Float64Var(&f.concentrateFeed, "concentrate-feed", riskConcentrateFeed, "concentrate feed, kg/day")
	cmd.Flags().Float64Var(&f.nitrogenRate, "nitrogen-rate", riskNitrogenRate, "nitrogen application, kg N/ha")
	cmd.Flags().Float64Var(&f.crudeProtein, "crude-protein", riskCrudeProtein, "crude protein, %")
	cmd.Flags().StringVar(&f.jsonFile, "json", "", "load parameters from a JSON file")
	cmd.Flags().BoolVar(&f.outputJSON, "output-json", false, "also print the results as JSON")
	cmd.Flags().BoolVar(&f.schedule, "schedule", false, "print the monthly repayment schedule")

	return cmd
}

// Risk report farm defaults for a confined herd.
const (
	riskConcentrateFeed = 8.0
	riskNitrogenRate    = 200.0
	riskCrudeProtein    = 16.5
	riskAvgLactations   = 3.5
	riskAgeFirstCalving = 24.0
	riskSoyaContent     = 20.0
)

// riskDefaults is the starting farm for the risk report. Herd size and milk
// yield are left unset so missing values can be detected.
func riskDefaults() farm.Parameters {
	p := farm.DefaultParameters()
	p.HerdSize = 0
	p.MilkYield = 0
	p.SystemType = farm.HousingConfined.SystemType()
	p.ConcentrateFeed = riskConcentrateFeed
	p.NitrogenRate = riskNitrogenRate
	p.CrudeProtein = riskCrudeProtein
	p.AvgLactations = riskAvgLactations
	p.AgeFirstCalving = riskAgeFirstCalving
	p.SoyaContent = riskSoyaContent
	p.GrazingMonths = 0
	p.LoanAmount = 0
	return p
}

// riskParameters merges the defaults, the --params and --json files, and the
// flags that were set, in that order.
func riskParameters(cmd *cobra.Command, f riskFlags) (farm.Parameters, error) {
	p, err := loadParameters(cmd, riskDefaults())
	if err != nil {
		return p, err
	}
	if f.jsonFile != "" {
		if p, err = farm.Load(f.jsonFile, p); err != nil {
			return p, fmt.Errorf("loading %s: %w", f.jsonFile, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("herd-size") {
		p.HerdSize = f.herdSize
	}
	if flags.Changed("milk-yield") {
		p.MilkYield = f.milkYield
	}
	if flags.Changed("loan-amount") {
		p.LoanAmount = f.loanAmount
	}
	if flags.Changed("loan-term") {
		p.LoanTerm = f.loanTerm
	}
	if flags.Changed("system-type") {
		h, hErr := farm.ParseHousingSystem(f.systemType)
		if hErr != nil {
			return p, hErr
		}
		p.SystemType = h.SystemType()
	}
	if flags.Changed("feed-quality") {
		p.FeedQuality = f.feedQuality
	}
	if flags.Changed("concentrate-feed") {
		p.ConcentrateFeed = f.concentrateFeed
	}
	if flags.Changed("nitrogen-rate") {
		p.NitrogenRate = f.nitrogenRate
	}
	if flags.Changed("crude-protein") {
		p.CrudeProtein = f.crudeProtein
	}
	return p, nil
}

// RiskReport is the loan risk assessment printed by the risk command.
type RiskReport struct {
	Parameters             farm.Parameters     `json:"parameters"`
	Emissions              emissions.Breakdown `json:"emissions"`
	Intensity              float64             `json:"intensity"`
	Risk                   finance.Risk        `json:"risk"`
	InterestRate           float64             `json:"interestRate"`
	MonthlyRepayment       float64             `json:"monthlyRepayment"`
	TotalRepaid            float64             `json:"totalRepaid"`
	LoanPerCow             float64             `json:"loanPerCow"`
	LoanAsPercentOfRevenue float64             `json:"loanAsPercentOfRevenue"`
	Recommendations        []string            `json:"recommendations"`
}

// NewRiskReport assembles the risk report from an evaluation. Sections
// switched off by feature flags are reported as zero.
func NewRiskReport(r *engine.Results) RiskReport {
	p := r.Parameters
	loanPerCow := safemath.SafeDivide(p.LoanAmount, p.Herd(), 0)
	revenue := p.MilkYield * p.Herd() * factors.RiskReportMilkPrice

	rep := RiskReport{
		Parameters:             p,
		Intensity:              r.Intensity,
		LoanPerCow:             loanPerCow,
		LoanAsPercentOfRevenue: safemath.SafeDivide(p.LoanAmount, revenue, 0) * 100,
	}
	if r.Emissions != nil {
		rep.Emissions = *r.Emissions
	}
	if r.Risk != nil {
		rep.Risk = r.Risk.Risk
		rep.InterestRate = r.Risk.InterestRate
	}
	if r.Loan != nil {
		rep.MonthlyRepayment = r.Loan.MonthlyRepayment
		rep.TotalRepaid = r.Loan.TotalRepaid
	}
	rep.Recommendations = Recommendations(rep.Risk, rep.Intensity, loanPerCow)
	return rep
}

// Recommendations lists actions for a risk grade. High risk recommendations
// depend on which of intensity and leverage is driving the grade.
func Recommendations(risk finance.Risk, intensity, loanPerCow float64) []string {
	switch risk {
	case finance.RiskHigh:
		out := []string{"HIGH RISK - Immediate action recommended:"}
		if intensity > highIntensityAbove {
			out = append(out,
				"Reduce emissions intensity through improved feeding",
				"Consider methane inhibitors or improved genetics")
		}
		if loanPerCow > highLoanPerCowAbove {
			out = append(out,
				"High debt load - consider restructuring",
				"Focus on increasing milk yield to improve cash flow")
		}
		return out
	case finance.RiskMedium:
		return []string{
			"MODERATE RISK - Improvements recommended:",
			"Optimize feed efficiency",
			"Consider renewable energy investments",
			"Monitor debt levels carefully",
		}
	default:
		return []string{
			"LOW RISK - Well positioned:",
			"Continue current management practices",
			"Consider expansion opportunities",
			"Eligible for green financing options",
		}
	}
}

func runRisk(cmd *cobra.Command, f riskFlags) error {
	p, err := riskParameters(cmd, f)
	if err != nil {
		return err
	}
	if p.HerdSize <= 0 || !(p.MilkYield > 0) {
		return &ExitError{Code: 1, Reason: missingRequiredReason}
	}

	calc := newCalculator(func(o *engine.Options) {
		o.Flags.EmissionsCalculator = true
		o.Flags.RiskScoring = true
		o.Flags.LoanCalculator = true
	})
	res, err := evaluate(cmd, calc, p)
	if err != nil {
		return err
	}

	rep := NewRiskReport(res)
	out := cmd.OutOrStdout()
	renderRiskReport(out, rep)

	if f.schedule {
		renderSchedule(out, finance.AmortizationSchedule(p.LoanAmount, rep.InterestRate, p.LoanTerm))
	}

	if f.outputJSON {
		fmt.Fprint(out, "\n\nJSON OUTPUT:\n")
		return writeJSON(out, rep)
	}
	return nil
}

func renderRiskReport(w io.Writer, rep RiskReport) {
	p := rep.Parameters
	e := rep.Emissions

	fmt.Fprint(w, "\n=== LOAN RISK ASSESSMENT ===\n\n")

	fmt.Fprintln(w, "FARM PARAMETERS:")
	fmt.Fprintf(w, "  Herd Size: %d cows\n", p.HerdSize)
	fmt.Fprintf(w, "  Milk Yield: %s L/cow/year\n", report.FormatNumber(p.MilkYield, 0))
	fmt.Fprintf(w, "  System Type: %s\n", p.SystemType)
	fmt.Fprintf(w, "  Loan Amount: %s over %d years\n", report.FormatCurrency(p.LoanAmount), p.LoanTerm)

	fmt.Fprintln(w, "\nEMISSIONS ANALYSIS:")
	fmt.Fprintf(w, "  Total Emissions: %s kg CO2e/cow/year\n", report.FormatNumber(e.Total, 1))
	fmt.Fprintf(w, "  Emissions Intensity: %s kg CO2e/L milk\n", report.FormatNumber(rep.Intensity, 3))
	fmt.Fprintln(w, "  Breakdown:")
	fmt.Fprintf(w, "    - Enteric: %s kg CO2e/cow/year\n", report.FormatNumber(e.Enteric, 1))
	fmt.Fprintf(w, "    - Manure: %s kg CO2e/cow/year\n", report.FormatNumber(e.Manure, 1))
	fmt.Fprintf(w, "    - Feed: %s kg CO2e/cow/year\n", report.FormatNumber(e.Feed, 1))
	fmt.Fprintf(w, "    - Deforestation: %s kg CO2e/cow/year\n", report.FormatNumber(e.Deforestation, 1))
	fmt.Fprintf(w, "    - Nitrogen: %s kg CO2e/cow/year\n", report.FormatNumber(e.Nitrogen, 1))

	fmt.Fprintln(w, "\nRISK ASSESSMENT:")
	fmt.Fprintf(w, "  Risk Category: %s\n", rep.Risk)
	fmt.Fprintf(w, "  Interest Rate: %s\n", report.FormatRate(rep.InterestRate))
	fmt.Fprintf(w, "  Monthly Repayment: %s\n", report.FormatCurrency(rep.MonthlyRepayment))
	fmt.Fprintf(w, "  Loan per Cow: %s\n", report.FormatCurrency(rep.LoanPerCow))
	fmt.Fprintf(w, "  Loan as %% of Revenue: %s\n", report.FormatPercent(rep.LoanAsPercentOfRevenue))

	fmt.Fprintln(w, "\nRECOMMENDATIONS:")
	for i, r := range rep.Recommendations {
		if i == 0 {
			fmt.Fprintf(w, "  %s\n", r)
			continue
		}
		fmt.Fprintf(w, "     - %s\n", r)
	}
}

func renderSchedule(w io.Writer, schedule []finance.Installment) {
	fmt.Fprintln(w, "\nREPAYMENT SCHEDULE:")
	if len(schedule) == 0 {
		fmt.Fprintln(w, "  No repayments")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tPayment\tInterest\tPrincipal\tBalance\t")
	for _, in := range schedule {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			in.Month, in.Payment.StringFixed(2), in.Interest.StringFixed(2),
			in.Principal.StringFixed(2), in.Balance.StringFixed(2))
	}
	_ = tw.Flush()
}
