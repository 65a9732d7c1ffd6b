// Package listview scrolls long lists in Bubble Tea views. It works out
// which rows fit in a viewport around the selected row and renders only
// those, so views stay within the terminal height.
package listview
