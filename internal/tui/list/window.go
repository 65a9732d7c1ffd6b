package listview

import "strings"

// halfViewportDivisor centres the selected row in the viewport.
const halfViewportDivisor = 2

// RenderFunc renders one item. selected marks the focused row.
type RenderFunc[T any] func(index int, item T, selected bool) string

// Window is the half-open row range [From, To) shown in a viewport.
type Window struct {
	From int
	To   int
}

// Visible returns the rows of a count-row list shown in a viewport of
// height rows, centred on selected where possible. A non-positive height
// shows every row.
func Visible(count, selected, height int) Window {
	if count <= 0 {
		return Window{}
	}
	if height <= 0 || height >= count {
		return Window{From: 0, To: count}
	}
	selected = Clamp(selected, count)

	from := selected - height/halfViewportDivisor
	if from < 0 {
		from = 0
	}
	to := from + height
	if to > count {
		to = count
		from = to - height
	}
	return Window{From: from, To: to}
}

// Above is the number of rows hidden above the window.
func (w Window) Above() int {
	return w.From
}

// Below is the number of rows hidden below the window in a count-row list.
func (w Window) Below(count int) int {
	return max(0, count-w.To)
}

// Len is the number of rows in the window.
func (w Window) Len() int {
	return w.To - w.From
}

// Clamp caps index to a valid row of a count-row list.
func Clamp(index, count int) int {
	switch {
	case count <= 0 || index < 0:
		return 0
	case index >= count:
		return count - 1
	default:
		return index
	}
}

// Page moves selected by one viewport of height rows in direction dir
// (negative for up), clamped to the list.
func Page(selected, height, count, dir int) int {
	step := max(1, height)
	if dir < 0 {
		step = -step
	}
	return Clamp(selected+step, count)
}

// Render joins the rendered rows of items inside w, one per line.
func Render[T any](items []T, w Window, selected int, render RenderFunc[T]) string {
	to := min(w.To, len(items))
	if w.From >= to {
		return ""
	}
	var sb strings.Builder
	for i := w.From; i < to; i++ {
		sb.WriteString(render(i, items[i], i == selected))
		sb.WriteString("\n")
	}
	return sb.String()
}
