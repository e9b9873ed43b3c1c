package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kokeshes/wxk-check/internal/ui/theme"
)

// Chip is one toggleable code in a ChipGrid.
type Chip struct {
	Code  string
	Label string
}

// ChipGrid lays out chips in fixed-width columns and scrolls vertically.
type ChipGrid struct {
	Chips   []Chip
	Cursor  int
	Columns int
	Rows    int // visible rows
}

// NewChipGrid creates a grid showing rows rows at a time.
func NewChipGrid(chips []Chip, columns, rows int) ChipGrid {
	return ChipGrid{Chips: chips, Columns: max(columns, 1), Rows: max(rows, 1)}
}

// Current returns the code under the cursor.
func (g ChipGrid) Current() string {
	if g.Cursor < 0 || g.Cursor >= len(g.Chips) {
		return ""
	}
	return g.Chips[g.Cursor].Code
}

// HandleKey moves the cursor through the grid.
func (g *ChipGrid) HandleKey(key string) {
	n := len(g.Chips)
	switch key {
	case "left", "h":
		g.Cursor = max(g.Cursor-1, 0)
	case "right", "l":
		g.Cursor = min(g.Cursor+1, n-1)
	case "up", "k":
		if g.Cursor-g.Columns >= 0 {
			g.Cursor -= g.Columns
		}
	case "down", "j":
		if g.Cursor+g.Columns < n {
			g.Cursor += g.Columns
		}
	}
}

// View renders the visible window of the grid. active reports whether a
// code is selected.
func (g ChipGrid) View(width int, focused bool, active func(code string) bool) string {
	colWidth := max(width/g.Columns, 8)
	row := g.Cursor / g.Columns
	first := max(row-g.Rows+1, 0)
	last := min(first+g.Rows, (len(g.Chips)+g.Columns-1)/g.Columns)

	var b strings.Builder
	for r := first; r < last; r++ {
		for c := 0; c < g.Columns; c++ {
			i := r*g.Columns + c
			if i >= len(g.Chips) {
				break
			}
			chip := g.Chips[i]
			text := chip.Code + " " + chip.Label
			if lipgloss.Width(text) > colWidth-3 {
				text = truncateRunes(text, colWidth-4) + "…"
			}
			style := theme.ChipOff
			if active(chip.Code) {
				style = theme.ChipOn
			}
			if focused && i == g.Cursor {
				style = style.Underline(true).Bold(true)
			}
			b.WriteString(lipgloss.NewStyle().Width(colWidth).Render(style.Render(text)))
		}
		if r < last-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(n, 0)])
}
