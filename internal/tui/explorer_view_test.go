package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/herdcarbon/internal/farm"
	"github.com/rshade/herdcarbon/internal/scenario"
)

func TestFieldParse(t *testing.T) {
	var herd, inhibitor Field
	for _, f := range Fields() {
		switch f.Key {
		case "herdSize":
			herd = f
		case "methaneInhibitor":
			inhibitor = f
		}
	}
	require.NotEmpty(t, herd.Key)
	require.NotEmpty(t, inhibitor.Key)

	tests := []struct {
		name    string
		field   Field
		input   string
		want    float64
		wantErr bool
	}{
		{"number", herd, " 250 ", 250, false},
		{"below range", herd, "0", 0, true},
		{"above range", herd, "10001", 0, true},
		{"nan", herd, "NaN", 0, true},
		{"text", herd, "many", 0, true},
		{"toggle yes", inhibitor, "Yes", 1, false},
		{"toggle off", inhibitor, "off", 0, false},
		{"toggle junk", inhibitor, "maybe", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0)
		})
	}
}

func TestFieldSetClamps(t *testing.T) {
	p := farm.DefaultParameters()
	for _, f := range Fields() {
		f.Set(&p, f.Max+1000)
		assert.InDelta(t, f.Max, f.Value(p), 1e-9, f.Key)
		f.Set(&p, f.Min-1000)
		assert.InDelta(t, f.Min, f.Value(p), 1e-9, f.Key)
	}
	assert.Equal(t, "no", Fields()[len(Fields())-4].Format(p))
}

func TestFieldsAcceptDefaults(t *testing.T) {
	p := farm.DefaultParameters()
	for _, f := range Fields() {
		f.Set(&p, f.Value(p))
	}
	assert.Equal(t, farm.DefaultParameters(), p)
}

func TestRenderDelta(t *testing.T) {
	tests := []struct {
		name     string
		row      scenario.ComparisonRow
		contains []string
	}{
		{
			name:     "improved decrease",
			row:      scenario.ComparisonRow{Baseline: 100, Scenario: 90, Delta: -10, PercentChange: -10, LowerIsBetter: true, Improved: true},
			contains: []string{"-10.00", IconArrowDown, "(-10.0%)"},
		},
		{
			name:     "increase",
			row:      scenario.ComparisonRow{Baseline: 100, Scenario: 125, Delta: 25, PercentChange: 25},
			contains: []string{"+25.00", IconArrowUp, "(+25.0%)"},
		},
		{
			name:     "no change",
			row:      scenario.ComparisonRow{Baseline: 100, Scenario: 100},
			contains: []string{"0.00", IconArrowRight},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderDelta(tt.row)
			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
		})
	}
}

func TestRenderParameterTable(t *testing.T) {
	original := farm.DefaultParameters()
	current := original
	current.HerdSize = 200

	out := RenderParameterTable(Fields(), current, original, 0, "")
	assert.Contains(t, out, "Parameters")
	assert.Contains(t, out, "Herd size")
	assert.Contains(t, out, "200")
	assert.Contains(t, out, "Loan term")

	editing := RenderParameterTable(Fields(), current, original, 0, "> 2")
	assert.Contains(t, editing, "> 2")

	assert.Contains(t, RenderParameterTable(nil, current, original, 0, ""), "No parameters")
}

func TestRenderParameterWindow(t *testing.T) {
	p := farm.DefaultParameters()
	fields := Fields()

	top := RenderParameterWindow(fields, p, p, 0, "", 5)
	assert.Contains(t, top, "Herd size")
	assert.NotContains(t, top, "Loan term")
	assert.NotContains(t, top, IconArrowUp)
	assert.Contains(t, top, fmt.Sprintf("%s %d more", IconArrowDown, len(fields)-5))

	bottom := RenderParameterWindow(fields, p, p, len(fields)-1, "", 5)
	assert.Contains(t, bottom, "Loan term")
	assert.NotContains(t, bottom, "Herd size")
	assert.Contains(t, bottom, fmt.Sprintf("%s %d more", IconArrowUp, len(fields)-5))
	assert.NotContains(t, bottom, IconArrowDown+" ")

	assert.Equal(t, RenderParameterTable(fields, p, p, 3, ""), RenderParameterWindow(fields, p, p, 3, "", 0))
}

func TestRenderMetricsEmpty(t *testing.T) {
	assert.Contains(t, RenderMetrics(nil, nil), "No results yet")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Calvin...", truncate("Calving interval", 9))
	assert.Equal(t, "Ca", truncate("Calving", 2))
	assert.Equal(t, 9, len([]rune(truncate(strings.Repeat("é", 20), 9))))
}

func TestRenderExplorerHelp(t *testing.T) {
	assert.Contains(t, RenderExplorerHelp(false), "q: Quit")
	assert.Contains(t, RenderExplorerHelp(true), "Esc: Cancel")
}
