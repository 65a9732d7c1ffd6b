package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/finance"
	"github.com/rshade/herdcarbon/internal/report"
	"github.com/rshade/herdcarbon/internal/scenario"
	listview "github.com/rshade/herdcarbon/internal/tui/list"
)

// Column widths for the parameter and metric tables.
const (
	fieldLabelWidth  = 20
	fieldValueWidth  = 12
	fieldUnitWidth   = 12
	metricLabelWidth = 28
	metricValueWidth = 14
	separatorWidth   = 60
	minTruncateLen   = 3
)

// RenderDelta renders a styled change with sign and direction arrow. Green
// means the change is an improvement for the metric.
func RenderDelta(row scenario.ComparisonRow) string {
	var icon, sign string
	var color lipgloss.Color

	rounded := report.Round(row.Delta, report.DefaultPrecision)
	switch {
	case rounded > 0:
		icon, sign = IconArrowUp, "+"
	case rounded < 0:
		icon = IconArrowDown
	default:
		icon = IconArrowRight
	}

	switch {
	case rounded == 0:
		color = ColorMuted
	case row.Improved:
		color = ColorOK
	default:
		color = ColorWarning
	}

	text := fmt.Sprintf("%s%s %s", sign, report.FormatNumber(rounded, report.DefaultPrecision), icon)
	if rounded != 0 && row.Baseline != 0 {
		text += fmt.Sprintf(" (%+.1f%%)", row.PercentChange)
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(text)
}

// RenderExplorerHeader renders the title box.
func RenderExplorerHeader(modified bool) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	title := "Dairy Farm Carbon Explorer"
	if modified {
		title += " (modified)"
	}
	return titleStyle.Render(title)
}

// RenderParameterTable renders every editable parameter row. editor is the
// text input view shown in place of the focused value while editing.
func RenderParameterTable(fields []Field, current, original farm.Parameters, focusedRow int, editor string) string {
	return RenderParameterWindow(fields, current, original, focusedRow, editor, 0)
}

// RenderParameterWindow renders at most rows parameter rows around the
// focused row, with markers for rows scrolled out of view. rows <= 0 renders
// every row.
func RenderParameterWindow(
	fields []Field, current, original farm.Parameters, focusedRow int, editor string, rows int,
) string {
	if len(fields) == 0 {
		return MutedStyle.Italic(true).Render("No parameters to edit")
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Parameters"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")

	win := listview.Visible(len(fields), focusedRow, rows)
	if n := win.Above(); n > 0 {
		sb.WriteString(MutedStyle.Render(fmt.Sprintf("  %s %d more", IconArrowUp, n)))
		sb.WriteString("\n")
	}

	modifiedStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)

	sb.WriteString(listview.Render(fields, win, focusedRow, func(_ int, f Field, focused bool) string {
		var row strings.Builder
		if focused {
			row.WriteString(IconArrowRight + " ")
		} else {
			row.WriteString("  ")
		}
		row.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", fieldLabelWidth, truncate(f.Label, fieldLabelWidth))))

		if focused && editor != "" {
			row.WriteString(editor)
			return row.String()
		}

		value := fmt.Sprintf("%-*s", fieldValueWidth, truncate(f.Format(current), fieldValueWidth))
		if f.Value(current) != f.Value(original) {
			row.WriteString(modifiedStyle.Render(value))
		} else {
			row.WriteString(valueStyle.Render(value))
		}
		row.WriteString(MutedStyle.Render(fmt.Sprintf(" %-*s", fieldUnitWidth, f.Unit)))
		return row.String()
	}))

	if n := win.Below(len(fields)); n > 0 {
		sb.WriteString(MutedStyle.Render(fmt.Sprintf("  %s %d more", IconArrowDown, n)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderMetrics renders the headline metrics of current with their change
// from baseline.
func RenderMetrics(baseline, current *engine.Results) string {
	if current == nil {
		return MutedStyle.Italic(true).Render("No results yet")
	}
	if baseline == nil {
		baseline = current
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Results"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")

	rows := scenario.Compare(baseline, current)
	for _, row := range rows {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", metricLabelWidth, row.Label)))
		sb.WriteString(ValueStyle.Render(fmt.Sprintf("%*s", metricValueWidth,
			report.FormatNumber(row.Scenario, report.DefaultPrecision))))
		sb.WriteString(MutedStyle.Render(fmt.Sprintf(" %-*s ", fieldUnitWidth, row.Unit)))
		sb.WriteString(RenderDelta(row))
		sb.WriteString("\n")
	}

	if current.LMEPlus != nil {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", metricLabelWidth, "LME+NUE")))
		sb.WriteString(ValueStyle.Render(fmt.Sprintf("%*s", metricValueWidth,
			report.FormatNumber(current.LMEPlus.Score, 0))))
		sb.WriteString(MutedStyle.Render(" " + current.LMEPlus.Category))
		sb.WriteString("\n")
	}
	if current.Risk != nil {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", metricLabelWidth, "Loan risk")))
		sb.WriteString(riskStyle(current.Risk.Risk).Render(fmt.Sprintf("%*s", metricValueWidth, string(current.Risk.Risk))))
		sb.WriteString(MutedStyle.Render(" at " + report.FormatRate(current.Risk.InterestRate)))
		sb.WriteString("\n")
	}
	if current.Pathway != nil {
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", metricLabelWidth, "Reachable by "+fmt.Sprint(current.Pathway.TargetYear))))
		reach := "no"
		if current.Pathway.CanReachTarget {
			reach = "yes"
		}
		sb.WriteString(ValueStyle.Render(fmt.Sprintf("%*s", metricValueWidth, reach)))
		sb.WriteString("\n")
	}

	if len(current.Validation) > 0 {
		sb.WriteString("\n")
		for _, v := range current.Validation {
			sb.WriteString(ErrorStyle.Render("! " + v))
			sb.WriteString("\n")
		}
	}

	if summary := scenario.Summary(rows); summary != "" {
		sb.WriteString("\n")
		sb.WriteString(MutedStyle.Italic(true).Render(summary))
		sb.WriteString("\n")
	}

	return sb.String()
}

func riskStyle(risk finance.Risk) lipgloss.Style {
	switch risk {
	case finance.RiskLow:
		return lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	case finance.RiskMedium:
		return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	}
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= minTruncateLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-minTruncateLen]) + "..."
}

// RenderExplorerHelp renders the keyboard shortcut help text.
func RenderExplorerHelp(editing bool) string {
	shortcuts := []string{
		"↑/↓: Navigate",
		"PgUp/PgDn: Scroll",
		"←/→: Step",
		"Enter: Edit",
		"r: Reset",
		"q: Quit",
	}
	if editing {
		shortcuts = []string{"Enter: Apply", "Esc: Cancel"}
	}
	return MutedStyle.Render(strings.Join(shortcuts, " | "))
}

// RenderLoadingIndicator renders the recalculation indicator.
func RenderLoadingIndicator() string {
	return lipgloss.NewStyle().Foreground(ColorSpinner).Bold(true).Render("Recalculating...")
}

// View renders the current view.
func (m *ExplorerModel) View() string {
	switch m.state {
	case ExplorerStateQuitting:
		return ""
	case ExplorerStateError:
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	case ExplorerStateEditing:
		// Rendered below.
	}

	editor := ""
	if m.editMode {
		editor = m.input.View()
	}

	params := RenderParameterWindow(m.fields, m.params, m.original, m.focusedRow, editor, m.visibleRows())
	metrics := RenderMetrics(m.baseline, m.current)
	if m.loading {
		metrics = RenderLoadingIndicator() + "\n\n" + metrics
	}

	var body string
	if m.width >= 2*separatorWidth+4 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, params, "    ", metrics)
	} else {
		body = params + "\n" + metrics
	}

	var sb strings.Builder
	sb.WriteString(RenderExplorerHeader(m.Modified()))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	if m.inputErr != "" {
		sb.WriteString(ErrorStyle.Render(m.inputErr))
		sb.WriteString("\n")
	}
	sb.WriteString(RenderExplorerHelp(m.editMode))
	return sb.String()
}
