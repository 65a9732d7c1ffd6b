package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every view.
const (
	ColorHeader    = lipgloss.Color("114")
	ColorBorder    = lipgloss.Color("70")
	ColorLabel     = lipgloss.Color("250")
	ColorValue     = lipgloss.Color("255")
	ColorHighlight = lipgloss.Color("214")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorMuted     = lipgloss.Color("243")
	ColorSpinner   = lipgloss.Color("69")
)

// Direction icons.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
)

//nolint:gochecknoglobals // Shared styles.
var (
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
)
