package listview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisible(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		selected int
		height   int
		want     Window
	}{
		{"empty list", 0, 0, 5, Window{}},
		{"fits", 4, 2, 10, Window{0, 4}},
		{"no height shows all", 30, 12, 0, Window{0, 30}},
		{"top", 30, 0, 10, Window{0, 10}},
		{"near top", 30, 3, 10, Window{0, 10}},
		{"centred", 30, 15, 10, Window{10, 20}},
		{"bottom", 30, 29, 10, Window{20, 30}},
		{"selection past end", 30, 99, 10, Window{20, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(tt.count, tt.selected, tt.height)
			assert.Equal(t, tt.want, got)
			if tt.count > 0 {
				sel := Clamp(tt.selected, tt.count)
				assert.True(t, sel >= got.From && sel < got.To, "selected row must be visible")
			}
		})
	}
}

func TestWindowCounts(t *testing.T) {
	w := Visible(30, 15, 10)
	assert.Equal(t, 10, w.Above())
	assert.Equal(t, 10, w.Below(30))
	assert.Equal(t, 10, w.Len())
	assert.Equal(t, 0, Window{0, 30}.Below(30))
}

func TestPage(t *testing.T) {
	assert.Equal(t, 10, Page(0, 10, 30, 1))
	assert.Equal(t, 29, Page(25, 10, 30, 1))
	assert.Equal(t, 0, Page(5, 10, 30, -1))
	assert.Equal(t, 4, Page(5, 0, 30, -1))
	assert.Equal(t, 0, Page(3, 10, 0, 1))
}

func TestRender(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	render := func(i int, s string, selected bool) string {
		if selected {
			return fmt.Sprintf("> %d %s", i, s)
		}
		return fmt.Sprintf("  %d %s", i, s)
	}

	assert.Equal(t, "  1 b\n> 2 c\n", Render(items, Window{1, 3}, 2, render))
	assert.Empty(t, Render(items, Window{}, 0, render))
	assert.Equal(t, "  3 d\n", Render(items, Window{3, 9}, 0, render))
}
