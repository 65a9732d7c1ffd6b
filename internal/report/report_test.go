package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herdcarbon/internal/engine"
	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/report"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)
}

func buildExport(t *testing.T, name string) report.Export {
	t.Helper()
	opts := engine.DefaultOptions()
	opts.Now = fixedNow
	r, err := engine.New(opts).Evaluate(context.Background(), farm.DefaultParameters())
	require.NoError(t, err)
	return report.Build(r, report.Meta{FarmName: name, Generator: "herdcarbon", Version: "0.1.0"}, fixedNow())
}

func TestBuild(t *testing.T) {
	exp := buildExport(t, "Home Farm")
	assert.Equal(t, report.SchemaVersion, exp.SchemaVersion)
	assert.Equal(t, fixedNow(), exp.GeneratedAt)

	id, err := ulid.ParseStrict(exp.ID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(fixedNow()), id.Time())

	require.NotNil(t, exp.Emissions)
	require.NotNil(t, exp.ReductionPathway)
	require.NotNil(t, exp.Financing)
	assert.Positive(t, exp.Summary.Intensity)

	require.NotNil(t, exp.Equivalents)
	assert.InDelta(t, exp.Summary.FarmEmissions*1000, exp.Equivalents.InputKg, 1e-6)
}

func TestJSONRoundTrip(t *testing.T) {
	exp := buildExport(t, "Home Farm")

	var first bytes.Buffer
	require.NoError(t, report.WriteJSON(&first, exp))

	back, err := report.ReadJSON(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, report.WriteJSON(&second, back))
	assert.Equal(t, first.String(), second.String())
}

func TestCheckSchema(t *testing.T) {
	tests := []struct {
		version string
		wantErr error
	}{
		{"1.0.0", nil},
		{"1.4.2", nil},
		{"2.0.0", report.ErrIncompatibleSchema},
		{"0.9.0", report.ErrIncompatibleSchema},
		{"banana", report.ErrInvalidSchema},
		{"", report.ErrInvalidSchema},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := report.CheckSchema(tt.version)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadJSONRejectsIncompatible(t *testing.T) {
	_, err := report.ReadJSON(strings.NewReader(`{"schemaVersion":"2.0.0"}`))
	assert.ErrorIs(t, err, report.ErrIncompatibleSchema)

	_, err = report.ReadJSON(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	exp := buildExport(t, "")
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, exp))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"section", "metric", "value", "unit"}, records[0])
	assert.Len(t, records, len(exp.Metrics())+1)
	assert.Equal(t, []string{report.SectionSummary, "Emissions intensity"}, records[1][:2])
}

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Trees", "Trees"},
		{"=SUM(A1:A2)", "'=SUM(A1:A2)"},
		{"+1", "'+1"},
		{"-1", "'-1"},
		{"@cmd", "'@cmd"},
		{"\tx", "'\tx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, report.SanitizeCell(tt.in), "input %q", tt.in)
	}
}

func TestRenderMarkdown(t *testing.T) {
	exp := buildExport(t, "Pipe | Farm")
	var buf bytes.Buffer
	require.NoError(t, report.RenderMarkdown(&buf, exp, -1))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Dairy Farm Carbon Report: Pipe \\| Farm"))
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "| Metric | Value | Unit |")
	assert.Contains(t, out, "## Reduction pathway")
	assert.Contains(t, out, "| Measure | Category | Difficulty |")
	assert.Contains(t, out, "### Financing products")
}

func TestRenderHTMLSanitizes(t *testing.T) {
	exp := buildExport(t, "<script>alert(1)</script>")
	exp.Validation = append(exp.Validation, `<img src=x onerror="alert(2)">`)

	var buf bytes.Buffer
	require.NoError(t, report.RenderHTML(&buf, exp, 2))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<title>Dairy Farm Carbon Report: &lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<img")
}

func TestRenderText(t *testing.T) {
	exp := buildExport(t, "Home Farm")

	var plain bytes.Buffer
	require.NoError(t, report.RenderText(&plain, exp, report.TextOptions{Precision: 1}))
	out := plain.String()
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "Emissions intensity")
	assert.Contains(t, out, "REDUCTION PATHWAY (target 2035)")
	assert.Contains(t, out, "Loan risk:")
	assert.Contains(t, out, "Farm emissions: Equivalent to driving ~")
	assert.NotContains(t, out, "Home Farm")

	var styled bytes.Buffer
	require.NoError(t, report.RenderText(&styled, exp, report.TextOptions{Precision: 1, Styled: true}))
	assert.Contains(t, styled.String(), "Home Farm")
}

func TestRender(t *testing.T) {
	exp := buildExport(t, "")
	for _, f := range report.Formats() {
		t.Run(f, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, report.Render(&buf, f, exp, report.RenderOptions{Precision: 2}))
			assert.NotZero(t, buf.Len())
		})
	}

	err := report.Render(&bytes.Buffer{}, "pdf", exp, report.RenderOptions{})
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,234.57", report.FormatNumber(1234.567, 2))
	assert.Equal(t, "1,235", report.FormatNumber(1234.5, 0))
	assert.Equal(t, "0.00", report.FormatNumber(0, 2))
	assert.Equal(t, "£1,234.57", report.FormatCurrency(1234.567))
	assert.Equal(t, "-£12.00", report.FormatCurrency(-12))
	assert.Equal(t, "£0.00", report.FormatCurrency(-0.001))
	assert.Equal(t, "12.3%", report.FormatPercent(12.34))
	assert.Equal(t, "4.50%", report.FormatRate(0.045))
	assert.InDelta(t, 0.0, report.Round(1/zero(), 2), 0)
}

func zero() float64 { return 0 }
