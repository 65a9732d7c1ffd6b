package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// TextOptions controls plain-text rendering.
type TextOptions struct {
	// Precision is the number of decimal places; negative means DefaultPrecision.
	Precision int
	// Styled adds a bordered headline box. Use only on terminals.
	Styled bool
}

//nolint:gochecknoglobals // Shared render style.
var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("70")).
	Padding(0, 1)

//nolint:gochecknoglobals // Shared render style.
var boxTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))

// RenderText writes a human-readable report as aligned tables.
func RenderText(w io.Writer, exp Export, opts TextOptions) error {
	precision := opts.Precision
	if precision < 0 {
		precision = DefaultPrecision
	}

	if opts.Styled {
		if _, err := fmt.Fprintln(w, headlineBox(exp, precision)); err != nil {
			return fmt.Errorf("writing headline: %w", err)
		}
	}

	for _, v := range exp.Validation {
		if _, err := fmt.Fprintf(w, "WARNING: %s\n", v); err != nil {
			return fmt.Errorf("writing validation: %w", err)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	section := ""
	for _, m := range exp.Metrics() {
		if m.Section == SectionReductionPathway {
			continue
		}
		if m.Section != section {
			section = m.Section
			title := strings.ToUpper(sectionTitle(section))
			if _, err := fmt.Fprintf(tw, "\n%s\t\t\n%s\t\t\n", title, strings.Repeat("-", len(title))); err != nil {
				return fmt.Errorf("writing header: %w", err)
			}
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name, FormatNumber(m.Value, precision), m.Unit); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if eq := exp.Equivalents; eq != nil {
		if _, err := fmt.Fprintf(w, "\nFarm emissions: %s\n", eq.DisplayText); err != nil {
			return fmt.Errorf("writing equivalents: %w", err)
		}
	}

	if pw := exp.ReductionPathway; pw != nil && len(pw.Measures) > 0 {
		if _, err := fmt.Fprintf(w, "\nREDUCTION PATHWAY (target %d)\n", pw.TargetYear); err != nil {
			return fmt.Errorf("writing pathway: %w", err)
		}
		tw = tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
		if _, err := fmt.Fprintf(tw, "MEASURE\tDIFFICULTY\tMONTHS\tREDUCTION\tCOST\tROI\n"); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		for _, ms := range pw.Measures {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
				ms.Name, ms.Difficulty, ms.TimeToImplement,
				FormatNumber(ms.PotentialReduction, precision), FormatCurrency(ms.Cost), FormatNumber(ms.ROI, 3),
			); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if r := exp.Risk; r != nil {
		if _, err := fmt.Fprintf(w, "\nLoan risk: %s\n", r.Risk); err != nil {
			return fmt.Errorf("writing risk: %w", err)
		}
	}
	return nil
}

func headlineBox(exp Export, precision int) string {
	var sb strings.Builder
	title := "Dairy Farm Carbon Report"
	if exp.Meta.FarmName != "" {
		title += ": " + exp.Meta.FarmName
	}
	sb.WriteString(boxTitleStyle.Render(title))
	fmt.Fprintf(&sb, "\nIntensity:     %s kg CO2e/L", FormatNumber(exp.Summary.Intensity, precision))
	fmt.Fprintf(&sb, "\nNet emissions: %s t CO2e/year", FormatNumber(exp.Summary.NetFarmEmissions, precision))
	fmt.Fprintf(&sb, "\nProfit:        %s", FormatCurrency(exp.Summary.Profit))
	return boxStyle.Render(sb.String())
}

// RenderOptions configures Render.
type RenderOptions struct {
	Precision int
	Styled    bool
}

// Render writes exp in the named format.
func Render(w io.Writer, format string, exp Export, opts RenderOptions) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return RenderText(w, exp, TextOptions{Precision: opts.Precision, Styled: opts.Styled})
	case FormatJSON:
		return WriteJSON(w, exp)
	case FormatCSV:
		return WriteCSV(w, exp)
	case FormatMarkdown, "md":
		return RenderMarkdown(w, exp, opts.Precision)
	case FormatHTML:
		return RenderHTML(w, exp, opts.Precision)
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}
