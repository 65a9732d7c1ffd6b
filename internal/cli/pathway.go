package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/herdcarbon/internal/cli/pagination"
	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/greenops"
	"github.com/rshade/herdcarbon/internal/pathway"
	"github.com/rshade/herdcarbon/internal/report"
)

// ErrFeatureDisabled is returned when a command needs a result section whose
// feature flag is off.
var ErrFeatureDisabled = errors.New("feature disabled")

// pathwayOutput is the JSON form of the pathway command.
type pathwayOutput struct {
	Floor          *pathway.FloorAnalysis  `json:"floor,omitempty"`
	Pathway        *pathway.Pathway        `json:"pathway"`
	Measures       []pathway.Measure       `json:"measures"`
	Page           pagination.Meta         `json:"page"`
	Timeline       []pathway.TimelineYear  `json:"timeline"`
	FinancingNeeds *pathway.FinancingNeeds `json:"financingNeeds"`
}

// measureView selects which measures are listed and in what order. Totals
// and the timeline always cover the whole pathway.
type measureView struct {
	sorter *pagination.MeasureSorter
	field  string
	order  string
	page   pagination.Params
}

func (v measureView) apply(measures []pathway.Measure) ([]pathway.Measure, pagination.Meta) {
	if v.sorter != nil {
		measures = v.sorter.Sort(measures, v.field, v.order)
	}
	return pagination.Apply(v.page, measures), pagination.NewMeta(v.page, len(measures))
}

// NewPathwayCmd creates the pathway command, which prints the ranked
// reduction measures and their implementation timeline.
func NewPathwayCmd() *cobra.Command {
	var (
		targetYear int
		asJSON     bool
		sortExpr   string
		page       pagination.Params
	)

	cmd := &cobra.Command{
		Use:   "pathway",
		Short: "Show the reduction pathway to the theoretical minimum",
		Example: `  # Pathway for the default farm
  herdcarbon pathway

  # Pathway to 2035 for a farm file, as JSON
  herdcarbon pathway --params farm.yaml --target-year 2035 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := page.Validate(); err != nil {
				return fmt.Errorf("invalid pagination parameters: %w", err)
			}
			view := measureView{page: page}
			if sortExpr != "" {
				field, order, err := pagination.ParseSort(sortExpr)
				if err != nil {
					return err
				}
				sorter := pagination.NewMeasureSorter()
				if !sorter.IsValidField(field) {
					return fmt.Errorf("%w: %q (valid: %s)", pagination.ErrInvalidSortField,
						field, strings.Join(sorter.GetValidFields(), ", "))
				}
				view.sorter, view.field, view.order = sorter, field, order
			}

			params, err := loadParameters(cmd, farm.DefaultParameters())
			if err != nil {
				return err
			}

			calc := newCalculator(func(o *engine.Options) {
				if cmd.Flags().Changed("target-year") {
					o.TargetYear = targetYear
				}
			})
			res, err := evaluate(cmd, calc, params)
			if err != nil {
				return err
			}
			if res.Pathway == nil {
				return fmt.Errorf("%w: %s", ErrFeatureDisabled, engine.FlagReductionPathways)
			}

			measures, meta := view.apply(res.Pathway.Measures)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), pathwayOutput{
					Floor:          res.Floor,
					Pathway:        res.Pathway,
					Measures:       measures,
					Page:           meta,
					Timeline:       res.Timeline,
					FinancingNeeds: res.FinancingNeeds,
				})
			}
			renderPathway(cmd.OutOrStdout(), res, measures, meta)
			return nil
		},
	}

	cmd.Flags().IntVar(&targetYear, "target-year", pathway.DefaultTargetYear, "year the pathway should reach the floor by")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the pathway as JSON")
	cmd.Flags().StringVar(&sortExpr, "sort", "",
		"sort measures by field[:asc|desc] (roi, reduction, cost, months, name; default pathway order)")
	cmd.Flags().IntVar(&page.Limit, "limit", 0, "show at most this many measures (0 = all)")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "skip this many measures")

	return cmd
}

func renderPathway(w io.Writer, res *engine.Results, measures []pathway.Measure, meta pagination.Meta) {
	pw := res.Pathway

	if fa := res.Floor; fa != nil {
		fmt.Fprintln(w, "THEORETICAL MINIMUM")
		fmt.Fprintf(w, "  Current emissions:   %s kg CO2e/year\n", report.FormatNumber(fa.CurrentEmissions, 0))
		fmt.Fprintf(w, "  Theoretical minimum: %s kg CO2e/year\n", report.FormatNumber(fa.TheoreticalMinimum, 0))
		fmt.Fprintf(w, "  Above minimum:       %s (%s)\n", report.FormatPercent(fa.PercentageAbove), fa.Interpretation.Category)
		fmt.Fprintf(w, "  %s\n\n", fa.Interpretation.Description)
	}

	fmt.Fprintf(w, "REDUCTION PATHWAY (target %d, %d years)\n", pw.TargetYear, pw.YearsToTarget)
	if len(pw.Measures) == 0 {
		fmt.Fprintln(w, "  No measures needed: the farm is at its theoretical minimum.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "MEASURE\tCATEGORY\tDIFFICULTY\tMONTHS\tKG CO2E/YEAR\tCOST/YEAR\tROI")
	for _, m := range measures {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			m.Name, m.Category, m.Difficulty, m.TimeToImplement,
			report.FormatNumber(m.PotentialReduction, 0),
			report.FormatCurrency(m.Cost),
			report.FormatNumber(m.ROI, 2))
	}
	_ = tw.Flush()
	if meta.Shown < meta.TotalItems {
		fmt.Fprintf(w, "(showing %d-%d of %d measures)\n", meta.Offset+1, meta.Offset+meta.Shown, meta.TotalItems)
	}

	fmt.Fprintf(w, "\nTotal reduction: %s kg CO2e/year of %s gap\n",
		report.FormatNumber(pw.TotalReduction, 0), report.FormatNumber(pw.Gap, 0))
	if eq := greenops.FromKg(pw.TotalReduction); !eq.IsEmpty {
		fmt.Fprintf(w, "  %s\n", eq.DisplayText)
	}
	fmt.Fprintf(w, "Total cost:      %s/year\n", report.FormatCurrency(pw.TotalCost))
	fmt.Fprintf(w, "Target reachable: %s\n", yesNo(pw.CanReachTarget))

	if len(res.Timeline) > 0 {
		fmt.Fprintln(w, "\nIMPLEMENTATION TIMELINE")
		tw = tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
		fmt.Fprintln(tw, "YEAR\tMEASURES\tREDUCTION\tCUMULATIVE\tREMAINING GAP")
		for _, ty := range res.Timeline {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				ty.Year, strings.Join(ty.Measures, ", "),
				report.FormatNumber(ty.YearReduction, 0),
				report.FormatNumber(ty.CumulativeReduction, 0),
				report.FormatNumber(ty.RemainingGap, 0))
		}
		_ = tw.Flush()
	}

	if fn := res.FinancingNeeds; fn != nil {
		fmt.Fprintln(w, "\nFINANCING NEEDS")
		fmt.Fprintf(w, "  Investment:     %s\n", report.FormatCurrency(fn.TotalInvestment))
		fmt.Fprintf(w, "  Annual savings: %s\n", report.FormatCurrency(fn.AnnualSavings))
		fmt.Fprintf(w, "  Annual payment: %s\n", report.FormatCurrency(fn.AnnualPayment))
		fmt.Fprintf(w, "  Payback:        %s years\n", report.FormatNumber(fn.PaybackYears, 1))
		fmt.Fprintf(w, "  NPV:            %s\n", report.FormatCurrency(fn.NPV))
	}
}
