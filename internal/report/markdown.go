package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

func mdEscape(s string) string {
	r := strings.NewReplacer("|", `\|`, "\n", " ", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

type mdWriter struct {
	buf       bytes.Buffer
	precision int
}

func (m *mdWriter) heading(level int, title string) {
	fmt.Fprintf(&m.buf, "%s %s\n\n", strings.Repeat("#", level), mdEscape(title))
}

func (m *mdWriter) table(header []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	m.buf.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	m.buf.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, r := range rows {
		cells := make([]string, len(r))
		for i, c := range r {
			cells[i] = mdEscape(c)
		}
		m.buf.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	m.buf.WriteString("\n")
}

func (m *mdWriter) num(v float64) string {
	return FormatNumber(v, m.precision)
}

// RenderMarkdown writes the export as a Markdown document. precision < 0
// means DefaultPrecision.
func RenderMarkdown(w io.Writer, exp Export, precision int) error {
	if precision < 0 {
		precision = DefaultPrecision
	}
	m := &mdWriter{precision: precision}

	title := "Dairy Farm Carbon Report"
	if exp.Meta.FarmName != "" {
		title += ": " + exp.Meta.FarmName
	}
	m.heading(1, title)
	fmt.Fprintf(&m.buf, "Generated %s by %s %s. Report ID `%s`, schema %s.\n\n",
		exp.GeneratedAt.Format(time.RFC3339), mdEscape(exp.Meta.Generator), mdEscape(exp.Meta.Version),
		exp.ID, exp.SchemaVersion)

	if len(exp.Validation) > 0 {
		m.heading(2, "Validation warnings")
		for _, v := range exp.Validation {
			fmt.Fprintf(&m.buf, "- %s\n", mdEscape(v))
		}
		m.buf.WriteString("\n")
	}

	var section string
	var rows [][]string
	flush := func() {
		if section != "" {
			m.heading(2, sectionTitle(section))
			m.table([]string{"Metric", "Value", "Unit"}, rows)
		}
		rows = nil
	}
	for _, mt := range exp.Metrics() {
		if mt.Section == SectionReductionPathway {
			continue
		}
		if mt.Section != section {
			flush()
			section = mt.Section
		}
		rows = append(rows, []string{mt.Name, m.num(mt.Value), mt.Unit})
	}
	flush()

	if eq := exp.Equivalents; eq != nil {
		fmt.Fprintf(&m.buf, "Farm emissions: %s.\n\n", mdEscape(eq.DisplayText))
	}

	if tm := exp.TheoreticalMinimum; tm != nil {
		m.heading(3, "Regional benchmarks")
		fmt.Fprintf(&m.buf, "%s: %s\n\n", tm.Interpretation.Category, mdEscape(tm.Interpretation.Description))
		refs := make([][]string, 0, len(tm.References))
		for _, r := range tm.References {
			refs = append(refs, []string{r.Name, m.num(r.PerCow), m.num(r.Difference), FormatPercent(r.PercentOf)})
		}
		m.table([]string{"Benchmark", "kg CO2e/cow", "Difference", "Farm as % of benchmark"}, refs)
	}

	if pw := exp.ReductionPathway; pw != nil {
		m.heading(2, sectionTitle(SectionReductionPathway))
		fmt.Fprintf(&m.buf, "Target year %d. Total reduction %s kg CO2e/year for %s/year. Target reachable: %t.\n\n",
			pw.TargetYear, m.num(pw.TotalReduction), FormatCurrency(pw.TotalCost), pw.CanReachTarget)
		measures := make([][]string, 0, len(pw.Measures))
		for _, ms := range pw.Measures {
			measures = append(measures, []string{
				ms.Name, string(ms.Category), string(ms.Difficulty), fmt.Sprintf("%d", ms.TimeToImplement),
				m.num(ms.PotentialReduction), FormatCurrency(ms.Cost), FormatNumber(ms.ROI, 3),
			})
		}
		m.table([]string{"Measure", "Category", "Difficulty", "Months", "kg CO2e/year", "Cost/year", "ROI"}, measures)
	}

	if len(exp.Timeline) > 0 {
		m.heading(3, "Implementation timeline")
		years := make([][]string, 0, len(exp.Timeline))
		for _, y := range exp.Timeline {
			years = append(years, []string{
				fmt.Sprintf("%d", y.Year), strings.Join(y.Measures, ", "),
				m.num(y.YearReduction), m.num(y.CumulativeReduction), m.num(y.RemainingGap),
			})
		}
		m.table([]string{"Year", "Measures", "Reduction", "Cumulative", "Remaining gap"}, years)
	}

	if f := exp.Financing; f != nil && len(f.Items) > 0 {
		m.heading(3, "Financing products")
		items := make([][]string, 0, len(f.Items))
		for _, it := range f.Items {
			items = append(items, []string{
				it.MeasureName, it.Option.Name, FormatCurrency(it.Amount), FormatRate(it.EffectiveRate),
				FormatCurrency(it.MonthlyPayment), m.num(it.CarbonBenefit),
			})
		}
		m.table([]string{"Measure", "Product", "Amount", "Rate", "Monthly", "kg CO2e/year"}, items)
	}

	if r := exp.Risk; r != nil {
		fmt.Fprintf(&m.buf, "Loan risk: **%s**\n", r.Risk)
	}

	_, err := w.Write(m.buf.Bytes())
	return err
}

func sectionTitle(section string) string {
	switch section {
	case SectionSummary:
		return "Summary"
	case SectionEmissions:
		return "Emissions per cow"
	case SectionSequestration:
		return "Sequestration"
	case SectionPerformance:
		return "Herd performance"
	case SectionEfficiency:
		return "Efficiency"
	case SectionTheoreticalMinimum:
		return "Theoretical minimum"
	case SectionReductionPathway:
		return "Reduction pathway"
	case SectionFinancing:
		return "Green financing"
	case SectionRisk:
		return "Loan risk"
	default:
		return section
	}
}
