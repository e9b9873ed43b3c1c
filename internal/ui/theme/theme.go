package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, muted for late-night use
var (
	Primary   = lipgloss.Color("#7C9CBF") // Steel Blue
	Secondary = lipgloss.Color("#5FB3A1") // Sage
	Accent    = lipgloss.Color("#E0A458") // Amber
	Success   = lipgloss.Color("#6BCB77") // Green
	Error     = lipgloss.Color("#E5534B") // Red
	Text      = lipgloss.Color("#E6EDF3") // Off White
	TextDim   = lipgloss.Color("#8B949E") // Gray
	BgDark    = lipgloss.Color("#0D1117") // Near Black
	BgCard    = lipgloss.Color("#161B22") // Charcoal
	Border    = lipgloss.Color("#30363D") // Slate
)

// Severity colors, highest first
var (
	SevCritical = lipgloss.Color("#E5534B")
	SevHigh     = lipgloss.Color("#E0A458")
	SevMed      = lipgloss.Color("#C9D1D9")
	SevInfo     = lipgloss.Color("#8B949E")
)

// SeverityColor maps a severity name to its color.
func SeverityColor(sev string) color.Color {
	switch sev {
	case "Critical":
		return SevCritical
	case "High":
		return SevHigh
	case "Med":
		return SevMed
	default:
		return SevInfo
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(14)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	AlertCard = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(SevCritical).
			Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Focused = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	ChipOn = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Secondary).
		Padding(0, 1)

	ChipOff = lipgloss.NewStyle().
		Foreground(Text).
		Padding(0, 1)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
