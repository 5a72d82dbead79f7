package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	barW       = 20 // width of the probability bar in characters
	menuNameW  = 18 // width of a gate name in the picker
	panelGapW  = 4  // horizontal space taken by panel borders
	controlsH  = 6  // height of the bottom help panel
	minEditorH = 4
)

// Colours, keyed by role rather than hue.
const (
	colorRegister = lipgloss.Color("#89b4fa")
	colorScript   = lipgloss.Color("#cba6f7")
	colorHelp     = lipgloss.Color("#a6e3a1")
	colorFocus    = lipgloss.Color("#fab387")
	colorNote     = lipgloss.Color("#f9e2af")
	colorFail     = lipgloss.Color("#f38ba8")
	colorBasis    = lipgloss.Color("#89dceb")
	colorGate     = lipgloss.Color("#94e2d5")
	colorBar      = lipgloss.Color("#74c7ec")
	colorMuted    = lipgloss.Color("#6c7086")
	colorText     = lipgloss.Color("#cdd6f4")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// framed is a rounded panel in colour c with the given padding.
func framed(c lipgloss.Color, padding ...int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(padding...)
}

var (
	stateStyle      = framed(colorRegister, 1)
	scriptStyle     = framed(colorScript, 1)
	controlsStyle   = framed(colorHelp, 0, 1)
	menuBorderStyle = framed(colorFocus, 0, 1)

	titleStyle        = fg(colorFocus).Bold(true)
	noteStyle         = fg(colorNote)
	initStyle         = fg(colorRegister)
	errorStyle        = fg(colorFail).Bold(true)
	cursorStyle       = fg(colorFocus).Bold(true)
	targetSelectStyle = fg(colorScript).Bold(true)
	activeGateStyle   = fg(colorNote)
	basisStyle        = fg(colorBasis)
	gateStyle         = fg(colorGate).Bold(true)
	barStyle          = fg(colorBar)
	dimStyle          = fg(colorMuted)

	menuSelectedStyle = fg(colorFocus).Bold(true)
	menuNormalStyle   = fg(colorText)
)
