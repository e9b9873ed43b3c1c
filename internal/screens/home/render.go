package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kokeshes/wxk-check/internal/diagnosis"
	"github.com/kokeshes/wxk-check/internal/store"
	"github.com/kokeshes/wxk-check/internal/ui/components"
	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

const titleFull = `██╗    ██╗██╗  ██╗██╗  ██╗
██║    ██║╚██╗██╔╝██║ ██╔╝
██║ █╗ ██║ ╚███╔╝ █████╔╝
██║███╗██║ ██╔██╗ ██╔═██╗
╚███╔███╔╝██╔╝ ██╗██║  ██╗
 ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

const titleCompact = "W · X · K  check"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(text))
}

// renderStats renders the dashboard line: saved logs, the last run and
// the draft context a new diagnosis will use.
func renderStats(st stats, cw int) string {
	count := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var lines []string
	if !st.loaded {
		lines = append(lines, dim.Render("loading…"))
	} else {
		lines = append(lines, count.Render(fmt.Sprintf("%d logs", st.entries))+"  "+renderLastRun(st.lastRun))
		lines = append(lines, dim.Render(fmt.Sprintf("draft: %s · load %d · %d codes",
			diagnosis.Profile(st.draft.Profile).Label(), st.draft.Overload, len(st.draft.Codes))))
	}
	if st.err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render(st.err))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func renderLastRun(r *store.Run) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if r == nil {
		return dim.Render("no runs yet")
	}
	text := "last run " + store.FormatListTime(r.CompletedAt)
	if len(r.Ranked) > 0 {
		text += " · top " + r.Ranked[0].Code
	}
	if r.Critical {
		return lipgloss.NewStyle().Foreground(theme.SevCritical).Bold(true).Render(text + " ⚠")
	}
	return dim.Render(text)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders the menu as plain lines for short terminals.
func renderMenuCompact(menu components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.TrimRight(menu.View(), "\n"))
}

// renderFrame wraps content in a double border, centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
