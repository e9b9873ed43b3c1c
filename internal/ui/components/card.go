package components

import (
	"charm.land/lipgloss/v2"

	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// AlertCard is Card with the critical border.
func AlertCard(content string, cw int) string {
	return theme.AlertCard.
		Width(cw).
		Render(content)
}

// Center places block horizontally centered in width.
func Center(block string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
